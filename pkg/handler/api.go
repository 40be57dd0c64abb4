package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	"github.com/arca-digital/complaints-book-backend/pkg/middleware"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Services are the collaborators the API handlers are built from.
type Services struct {
	DaoRegistry *dao.DaoRegistry
	Registrar   *domains.Registrar
	Resolver    tenancy.Resolver
	Jobs        queue.JobStore
	Runner      worker.PassRunner
	Panel       plesk_client.PleskClient
	Config      *config.Configuration
}

// RegisterRoutes mounts the tenant API under /domains and the operator API
// under /platform.
func RegisterRoutes(engine *echo.Echo, services Services) {
	domainGroup := engine.Group("/domains",
		middleware.ResolveTenant(services.Resolver),
		middleware.RequireKnownTenant,
		middleware.EnforceConsistentTenant,
	)
	RegisterDomainRoutes(domainGroup, services.DaoRegistry, services.Registrar)

	platformGroup := engine.Group("/platform", middleware.EnforceOperatorToken(services.Config.Operator.Token))
	RegisterPlatformRoutes(platformGroup, services.DaoRegistry, services)

	data, err := json.MarshalIndent(engine.Routes(), "", "  ")
	if err == nil {
		log.Debug().Msg(string(data))
	}
}

func RegisterPing(engine *echo.Echo) {
	engine.GET("/ping", ping)
	engine.GET("/ping/", ping)
}

func ping(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "pong",
	})
}
