package middleware

import (
	"mime"
	"net/http"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
)

// Request bodies without a payload, e.g. POST /platform/jobs/run, are not checked.
func enforceJSONContentTypeSkipper(c echo.Context) bool {
	r := c.Request()
	return r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0
}

// EnforceJSONContentType answers 415 when a request body is not JSON.
func EnforceJSONContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if enforceJSONContentTypeSkipper(c) {
			return next(c)
		}
		mediatype, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
		if err != nil {
			return ce.NewErrorResponse(http.StatusUnsupportedMediaType, "Error parsing content type", err.Error())
		}
		if mediatype != echo.MIMEApplicationJSON {
			return ce.NewErrorResponse(http.StatusUnsupportedMediaType, "Incorrect content type", "Content-Type must be application/json")
		}
		return next(c)
	}
}
