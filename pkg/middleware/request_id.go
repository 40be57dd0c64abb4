package middleware

import (
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AddRequestId makes sure every request carries an id. A client supplied id is
// kept, otherwise one is generated. The id is echoed in the response and added
// to the request logger.
func AddRequestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestId := c.Request().Header.Get(config.HeaderRequestId)
		if requestId == "" {
			requestId = uuid.NewString()
			c.Request().Header.Set(config.HeaderRequestId, requestId)
		}
		c.Set(config.HeaderRequestId, requestId)
		c.Response().Header().Set(config.HeaderRequestId, requestId)

		logger := zerolog.Ctx(c.Request().Context()).With().Str(config.RequestIdLoggingKey, requestId).Logger()
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))
		return next(c)
	}
}
