package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const BodyDumpLimit = 1000
const BodyStoreKey = "body_backup"

// LogServerErrorRequest logs the start of the request body when a handler
// answers with a 5xx error.
func LogServerErrorRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		if c.Get(BodyStoreKey) == nil {
			storeRequestBody(c)
		}
		if err = next(c); err != nil {
			if containsServerError(err) {
				logRequestBody(c)
			}
			return err
		}
		return nil
	}
}

func containsServerError(err error) bool {
	httpError := new(ce.ErrorResponse)
	if errors.As(err, httpError) {
		for _, e := range httpError.Errors {
			if e.Status >= http.StatusInternalServerError {
				return true
			}
		}
		return false
	}
	return ce.HttpCodeForError(err) >= http.StatusInternalServerError
}

func logRequestBody(c echo.Context) {
	body, ok := c.Get(BodyStoreKey).([]byte)
	if !ok || len(body) == 0 {
		return
	}
	zerolog.Ctx(c.Request().Context()).Error().
		Str("method", c.Request().Method).
		Str("uri", c.Request().RequestURI).
		Msgf("Request body: %s", body)
}

func storeRequestBody(c echo.Context) {
	var reqBody []byte
	if c.Request().Body != nil {
		reqBody, _ = io.ReadAll(c.Request().Body)
	}
	c.Request().Body = io.NopCloser(bytes.NewBuffer(reqBody))

	limit := min(len(reqBody), BodyDumpLimit)
	c.Set(BodyStoreKey, reqBody[:limit])
}
