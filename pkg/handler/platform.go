package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arca-digital/complaints-book-backend/pkg/api"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type PlatformHandler struct {
	DaoRegistry dao.DaoRegistry
	Jobs        queue.JobStore
	Runner      worker.PassRunner
	Panel       plesk_client.PleskClient
	Plesk       config.Plesk
}

func RegisterPlatformRoutes(engine *echo.Group, daoReg *dao.DaoRegistry, services Services) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}

	platformHandler := PlatformHandler{
		DaoRegistry: *daoReg,
		Jobs:        services.Jobs,
		Runner:      services.Runner,
		Panel:       services.Panel,
		Plesk:       services.Config.Plesk,
	}
	engine.GET("/jobs", platformHandler.listJobs)
	engine.POST("/jobs/run", platformHandler.runPass)
	engine.POST("/jobs/:id/retry", platformHandler.retryJob)
	engine.GET("/plesk/ping", platformHandler.pingPanel)
}

// listJobs is the operations dashboard: jobs per status, the latest jobs, the
// last pass marker and the panel settings without secrets.
func (ph *PlatformHandler) listJobs(c echo.Context) error {
	ctx := c.Request().Context()
	limit, err := ParseLimit(c, api.DefaultJobsLimit, api.DefaultJobsLimit)
	if err != nil {
		return err
	}

	counts, err := ph.DaoRegistry.ProvisioningJob.CountByStatus(ctx)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error counting jobs", err.Error())
	}
	recent, err := ph.DaoRegistry.ProvisioningJob.ListRecent(ctx, limit)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error listing jobs", err.Error())
	}
	marker, err := ph.DaoRegistry.SystemKV.Get(ctx, config.ProvisionLastRunKey)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error fetching last run", err.Error())
	}

	response := api.JobsDashboardResponse{
		Counts: counts,
		Jobs:   make([]api.ProvisioningJobResponse, 0, len(recent)),
		Panel:  panelSummary(ph.Plesk),
	}
	for _, j := range recent {
		response.Jobs = append(response.Jobs, provisioningJobResponse(j))
	}
	if marker != nil {
		response.LastRun = &api.LastRunResponse{Marker: marker.Value, UpdatedAt: marker.UpdatedAt}
	}
	return c.JSON(http.StatusOK, response)
}

// runPass runs a provisioning pass right away.
func (ph *PlatformHandler) runPass(c echo.Context) error {
	result, err := ph.Runner.RunPass(c.Request().Context())
	switch {
	case errors.Is(err, tasks.ErrPassRunning):
		return ce.NewErrorResponse(http.StatusConflict, "Provisioning pass not started", err.Error())
	case err != nil:
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error running provisioning pass", err.Error())
	}
	zerolog.Ctx(c.Request().Context()).Info().Str("outcome", result.Outcome).Msg("Manual provisioning pass")
	return c.JSON(http.StatusOK, result)
}

// retryJob puts a failed job back to pending. Attempts are kept.
func (ph *PlatformHandler) retryJob(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return ce.NewErrorResponse(http.StatusBadRequest, "Invalid job id", "job id must be a positive integer")
	}
	job, outcome, err := ph.Jobs.Retry(c.Request().Context(), id)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error retrying job", err.Error())
	}
	return c.JSON(http.StatusOK, api.RetryJobResponse{
		Job:     provisioningJobResponse(job),
		Outcome: string(outcome),
	})
}

// pingPanel sends a server info request with the alias credentials. Any panel
// answer is relayed with 200, only an unreachable panel is reported as 502.
func (ph *PlatformHandler) pingPanel(c echo.Context) error {
	res := ph.Panel.Ping(c.Request().Context())
	response := api.PanelPingResponse{
		OK:           res.OK,
		Status:       res.Status,
		Error:        res.Error,
		DetailSource: string(res.DetailSource),
		NetworkError: res.NetworkError,
		Body:         res.Body,
	}
	if res.NetworkError {
		return c.JSON(http.StatusBadGateway, response)
	}
	return c.JSON(http.StatusOK, response)
}

func panelSummary(cfg config.Plesk) api.PanelSummary {
	summary := api.PanelSummary{
		AutoProvision: cfg.AutoProvision,
		SiteName:      cfg.SiteName,
		URL:           RedactedURL(cfg.URL),
		VerifyTLS:     cfg.VerifyTLS,
		HasKey:        cfg.APIKey != "",
		BatchSize:     cfg.BatchSize,
	}
	if cfg.Interval > 0 {
		summary.Interval = cfg.Interval.String()
	}
	return summary
}
