package handler

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/arca-digital/complaints-book-backend/pkg/cache"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	"github.com/arca-digital/complaints-book-backend/pkg/middleware"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	test_handler "github.com/arca-digital/complaints-book-backend/pkg/test/handler"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// HandlerSuite serves the full API against mocked collaborators.
type HandlerSuite struct {
	suite.Suite
	cfg      config.Configuration
	reg      *dao.MockDaoRegistry
	resolver *tenancy.MockResolver
	verifier *domains.MockVerifier
	jobs     *queue.MockJobStore
	cache    *cache.MockCache
	notifier *notifications.MockNotifier
	runner   *worker.MockPassRunner
	panel    *plesk_client.MockPleskClient
}

func (s *HandlerSuite) SetupTest() {
	s.cfg = config.Configuration{
		Platform: config.Platform{BaseDomain: "platform.io", DefaultIP: config.DefaultPlatformIP},
		Domains:  config.Domains{VerifyRequired: true},
		Plesk: config.Plesk{
			URL:           "https://admin:pw@panel.example.com:8443/enterprise/control/agent.php?debug=1",
			APIKey:        "panel-key",
			SiteName:      "platform.io",
			AutoProvision: true,
			BatchSize:     25,
		},
		Operator: config.Operator{Token: test_handler.MockOperatorToken},
	}
	s.reg = dao.GetMockDaoRegistry(s.T())
	s.resolver = tenancy.NewMockResolver(s.T())
	s.verifier = domains.NewMockVerifier(s.T())
	s.jobs = queue.NewMockJobStore(s.T())
	s.cache = cache.NewMockCache(s.T())
	s.notifier = notifications.NewMockNotifier(s.T())
	s.runner = worker.NewMockPassRunner(s.T())
	s.panel = plesk_client.NewMockPleskClient(s.T())
}

func (s *HandlerSuite) router() *echo.Echo {
	router := echo.New()
	router.Use(middleware.AddRequestId)
	router.Use(middleware.ExtractStatus)
	router.Use(middleware.EnforceJSONContentType)
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler

	daoReg := s.reg.ToDaoRegistry()
	RegisterPing(router)
	RegisterRoutes(router, Services{
		DaoRegistry: daoReg,
		Registrar:   domains.NewRegistrar(&s.cfg, s.verifier, daoReg.TenantDomain, s.jobs, s.cache, s.notifier),
		Resolver:    s.resolver,
		Jobs:        s.jobs,
		Runner:      s.runner,
		Panel:       s.panel,
		Config:      &s.cfg,
	})
	return router
}

func (s *HandlerSuite) serve(req *http.Request) (int, []byte) {
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	s.Require().NoError(err)
	return response.StatusCode, body
}
