package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// extractTenantIds collects tenant_id values from a response, either at the
// top level, inside a nested "domain" object or inside a "data" array.
func extractTenantIds(response map[string]any) []int64 {
	var ids []int64
	collect := func(v any) {
		if m, ok := v.(map[string]any); ok {
			if id, ok := m["tenant_id"].(float64); ok {
				ids = append(ids, int64(id))
			}
		}
	}

	collect(response)
	collect(response["domain"])
	switch data := response["data"].(type) {
	case []any:
		for _, item := range data {
			collect(item)
		}
	case map[string]any:
		collect(data)
	}
	return ids
}

// EnforceConsistentTenant fails a tenant API response that carries rows of a
// tenant other than the one resolved for the request.
func EnforceConsistentTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tc, ok := tenancy.FromContext(c.Request().Context())
		if !ok {
			return next(c)
		}

		rec := httptest.NewRecorder()
		originalResponse := c.Response()
		c.SetResponse(echo.NewResponse(rec, c.Echo()))

		err := next(c)
		c.SetResponse(originalResponse)
		if err != nil {
			return err
		}

		if rec.Code >= http.StatusOK && rec.Code < http.StatusMultipleChoices && rec.Body.Len() != 0 {
			var response map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				zerolog.Ctx(c.Request().Context()).Warn().Err(err).Msg("Failed to parse response JSON for tenant_id validation")
			} else {
				for _, id := range extractTenantIds(response) {
					if id != tc.Tenant.ID {
						zerolog.Ctx(c.Request().Context()).Error().Int64("response_tenant_id", id).Msg("Tenant ID mismatch")
						return ce.NewErrorResponse(http.StatusInternalServerError, "Tenant mismatch", "Response tenant does not match the request tenant")
					}
				}
			}
		}

		for key, values := range rec.Header() {
			for _, value := range values {
				c.Response().Header().Set(key, value)
			}
		}
		c.Response().WriteHeader(rec.Code)
		_, err = c.Response().Write(rec.Body.Bytes())
		return err
	}
}
