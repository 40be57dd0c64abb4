package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func serveTenantRoute(resolver tenancy.Resolver, host string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = config.CustomHTTPErrorHandler
	e.Use(ResolveTenant(resolver))
	e.GET("/domains", func(c echo.Context) error {
		tc, _ := tenancy.FromContext(c.Request().Context())
		return c.String(http.StatusOK, tc.Tenant.Slug)
	}, RequireKnownTenant)

	req := httptest.NewRequest(http.MethodGet, "/domains", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolveTenant(t *testing.T) {
	resolver := tenancy.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "shop.example.com").Return(tenancy.TenantContext{
		Tenant: models.Tenant{ID: 7, Slug: "acme"},
		Host:   "shop.example.com",
		Source: tenancy.SourceDomain,
	}, nil).Once()

	rec := serveTenantRoute(resolver, "shop.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", rec.Body.String())
}

func TestUnknownTenantRejected(t *testing.T) {
	resolver := tenancy.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "nowhere.example.com").Return(tenancy.TenantContext{
		Tenant: models.Tenant{Slug: tenancy.UnknownTenantSlug},
		Source: tenancy.SourceUnknown,
	}, nil).Once()

	rec := serveTenantRoute(resolver, "nowhere.example.com")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown tenant")
}

func TestResolveTenantStorageError(t *testing.T) {
	resolver := tenancy.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "shop.example.com").Return(tenancy.TenantContext{}, &ce.DaoError{Message: "connection refused"}).Once()

	rec := serveTenantRoute(resolver, "shop.example.com")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
