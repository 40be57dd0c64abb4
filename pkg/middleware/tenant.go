package middleware

import (
	"net/http"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ResolveTenant stores the tenant addressed by the request host in the request
// context and tags the request logger with it.
func ResolveTenant(resolver tenancy.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			tc, err := resolver.Resolve(ctx, c.Request().Host)
			if err != nil {
				return ce.NewErrorResponseFromError("Error resolving tenant", err)
			}
			logger := zerolog.Ctx(ctx).With().
				Int64("tenant_id", tc.Tenant.ID).
				Str("tenant_source", string(tc.Source)).
				Logger()
			ctx = logger.WithContext(tenancy.WithTenant(ctx, tc))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireKnownTenant rejects requests whose host matched no tenant.
func RequireKnownTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tc, ok := tenancy.FromContext(c.Request().Context())
		if !ok || !tc.Known() {
			return ce.NewErrorResponse(http.StatusNotFound, "Unknown tenant", "No tenant is served on host "+c.Request().Host)
		}
		return next(c)
	}
}
