package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arca-digital/complaints-book-backend/pkg/cache"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	"github.com/arca-digital/complaints-book-backend/pkg/handler"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockServices(t *testing.T) handler.Services {
	cfg := &config.Configuration{
		Platform: config.Platform{BaseDomain: "platform.io"},
		Operator: config.Operator{Token: "operator-token"},
	}
	daoReg := dao.GetMockDaoRegistry(t).ToDaoRegistry()
	jobs := queue.NewMockJobStore(t)
	return handler.Services{
		DaoRegistry: daoReg,
		Registrar: domains.NewRegistrar(cfg, domains.NewMockVerifier(t), daoReg.TenantDomain, jobs,
			cache.NewMockCache(t), notifications.NewMockNotifier(t)),
		Resolver: tenancy.NewMockResolver(t),
		Jobs:     jobs,
		Runner:   worker.NewMockPassRunner(t),
		Panel:    plesk_client.NewMockPleskClient(t),
		Config:   cfg,
	}
}

func TestConfigureEcho(t *testing.T) {
	type TestCaseExpected map[string]map[string]string

	testCases := TestCaseExpected{
		"/ping": {
			"GET": "github.com/arca-digital/complaints-book-backend/pkg/handler.ping",
		},
		"/domains": {
			"GET":  "github.com/arca-digital/complaints-book-backend/pkg/handler.(*DomainHandler).listDomains-fm",
			"POST": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*DomainHandler).addDomain-fm",
		},
		"/domains/verify": {
			"GET": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*DomainHandler).verifyDomain-fm",
		},
		"/platform/jobs": {
			"GET": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*PlatformHandler).listJobs-fm",
		},
		"/platform/jobs/run": {
			"POST": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*PlatformHandler).runPass-fm",
		},
		"/platform/jobs/:id/retry": {
			"POST": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*PlatformHandler).retryJob-fm",
		},
		"/platform/plesk/ping": {
			"GET": "github.com/arca-digital/complaints-book-backend/pkg/handler.(*PlatformHandler).pingPanel-fm",
		},
	}

	e := ConfigureEcho(mockServices(t))
	require.NotNil(t, e)

	for path, endpoints := range testCases {
		for method, fnc := range endpoints {
			found := false

			for _, route := range e.Routes() {
				if route.Path == path && method == route.Method {
					found = true
					assert.Equal(t, fnc, route.Name)
				}
			}
			assert.True(t, found, "Could not find route for %v: %v", method, path)
		}
	}
}

func TestConfigureEchoSetsRequestId(t *testing.T) {
	e := ConfigureEcho(mockServices(t))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(config.HeaderRequestId, "req-123")
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "req-123", rr.Header().Get(config.HeaderRequestId))
}

func TestEchoWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	var e *echo.Echo
	require.NotPanics(t, func() {
		e = ConfigureEchoWithMetrics(mockServices(t), metrics)
	})
	assert.NotNil(t, e)
}
