package router

import (
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/handler"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/middleware"
	"github.com/content-services/lecho/v3"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func ConfigureEcho(services handler.Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	// Add global middlewares
	echoLogger := lecho.From(log.Logger,
		lecho.WithTimestamp(),
		lecho.WithCaller(),
	)
	e.Logger = echoLogger

	e.Use(middleware.AddRequestId)
	e.Use(lecho.Middleware(lecho.Config{
		Logger:              echoLogger,
		RequestIDHeader:     config.HeaderRequestId,
		RequestIDKey:        config.RequestIdLoggingKey,
		Skipper:             config.SkipLogging,
		RequestLatencyLevel: zerolog.WarnLevel,
		RequestLatencyLimit: 500 * time.Millisecond,
	}))
	e.Use(middleware.ExtractStatus) // Must be after lecho
	e.Use(middleware.EnforceJSONContentType)
	e.Use(middleware.LogServerErrorRequest)

	// Add routes
	handler.RegisterPing(e)
	handler.RegisterRoutes(e, services)

	// Set error handler
	e.HTTPErrorHandler = config.CustomHTTPErrorHandler
	return e
}

func ConfigureEchoWithMetrics(services handler.Services, metrics *instrumentation.Metrics) *echo.Echo {
	e := ConfigureEcho(services)
	e.Use(middleware.CreateMetricsMiddleware(metrics))
	return e
}
