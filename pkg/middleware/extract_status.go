package middleware

import (
	"errors"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
)

// ExtractStatus sets the response status from a returned error before lecho
// logs the request, so the log level follows the status the error handler
// will answer with.
func ExtractStatus(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil {
			return nil
		}
		httpErr := new(ce.ErrorResponse)
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, httpErr):
			largest := 0
			for _, respErr := range httpErr.Errors {
				largest = max(largest, respErr.Status)
			}
			c.Response().Status = largest
		case errors.As(err, &echoErr):
			c.Response().Status = echoErr.Code
		default:
			c.Response().Status = ce.HttpCodeForError(err)
		}
		return err
	}
}
