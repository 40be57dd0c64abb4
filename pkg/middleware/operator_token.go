package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
)

const HeaderOperatorToken = "X-Operator-Token"

// EnforceOperatorToken guards the platform operator routes. The token is read
// from X-Operator-Token or a bearer Authorization header. An empty configured
// token disables the routes altogether.
func EnforceOperatorToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return ce.NewErrorResponse(http.StatusServiceUnavailable, "Operator access disabled", "operator.token is not configured")
			}
			given := operatorToken(c.Request())
			if given == "" {
				return ce.NewErrorResponse(http.StatusUnauthorized, "Missing operator token", "Send the operator token in the "+HeaderOperatorToken+" header")
			}
			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				return ce.NewErrorResponse(http.StatusForbidden, "Invalid operator token", "The operator token is not valid")
			}
			return next(c)
		}
	}
}

func operatorToken(r *http.Request) string {
	if t := r.Header.Get(HeaderOperatorToken); t != "" {
		return t
	}
	auth := r.Header.Get(echo.HeaderAuthorization)
	if scheme, t, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(t)
	}
	return ""
}
