package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	m "github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrPassRunning is returned when a pass is requested while another one runs.
var ErrPassRunning = errors.New("a provisioning pass is already running")

// ProvisionalError is stored on a job before the panel call, so a job whose
// pass died mid-call shows why it is still pending.
const ProvisionalError = "provisioning attempt did not complete"

const (
	PassDisabled    = "disabled"
	PassNoPending   = "no_pending"
	PassFinished    = "finished"
	PassInterrupted = "interrupted"
)

// JobOutcome is what one job of a pass ended with.
type JobOutcome struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	Domain   string `json:"domain"`
	OK       bool   `json:"ok"`
	Status   int    `json:"status"`
	Error    string `json:"error,omitempty"`
}

type PassResult struct {
	Outcome   string       `json:"outcome"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Jobs      []JobOutcome `json:"jobs"`
}

// Provisioner turns pending alias_create jobs into panel site aliases.
// Passes never overlap, jobs run one after the other.
type Provisioner struct {
	cfg      config.Plesk
	jobs     queue.JobStore
	kv       dao.SystemKVDao
	panel    plesk_client.PleskClient
	notifier notifications.Notifier
	metrics  *m.Metrics
	running  sync.Mutex
}

func NewProvisioner(
	cfg config.Plesk,
	jobs queue.JobStore,
	kv dao.SystemKVDao,
	panel plesk_client.PleskClient,
	notifier notifications.Notifier,
	metrics *m.Metrics,
) *Provisioner {
	return &Provisioner{
		cfg:      cfg,
		jobs:     jobs,
		kv:       kv,
		panel:    panel,
		notifier: notifier,
		metrics:  metrics,
	}
}

// RunPass processes up to plesk.batch_size pending jobs. A failing job never
// stops the batch. Cancelling ctx stops the pass before the next job, the job
// in flight is always completed.
func (p *Provisioner) RunPass(ctx context.Context) (PassResult, error) {
	if !p.running.TryLock() {
		return PassResult{}, ErrPassRunning
	}
	defer p.running.Unlock()

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &log.Logger
	}

	if !p.cfg.AutoProvision {
		logger.Info().Msg("plesk.auto_provision is disabled, skipping provisioning pass")
		return PassResult{Outcome: PassDisabled}, nil
	}
	if err := p.cfg.Validate(); err != nil {
		return PassResult{}, err
	}

	start := time.Now()
	defer p.metrics.RecordPassDuration(start)

	batch := p.cfg.BatchSize
	if batch <= 0 {
		batch = config.DefaultProvisioningBatch
	}
	pending, err := p.jobs.ListPending(ctx, batch)
	if err != nil {
		return PassResult{}, fmt.Errorf("error listing pending jobs: %w", err)
	}
	if len(pending) == 0 {
		logger.Info().Msg("No pending provisioning jobs")
		p.setMarker(ctx, config.PassMarkerNoPending)
		return PassResult{Outcome: PassNoPending, Jobs: []JobOutcome{}}, nil
	}

	p.setMarker(ctx, config.PassMarkerStarted)
	result := PassResult{Jobs: make([]JobOutcome, 0, len(pending))}
	for _, job := range pending {
		if ctx.Err() != nil {
			logger.Warn().Err(ctx.Err()).Msg("Provisioning pass interrupted, remaining jobs stay pending")
			result.Outcome = PassInterrupted
			return result, ctx.Err()
		}
		outcome := p.processJob(context.WithoutCancel(ctx), job)
		if outcome.OK {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Jobs = append(result.Jobs, outcome)
	}
	p.setMarker(ctx, config.PassMarkerFinished)
	result.Outcome = PassFinished
	logger.Info().Int("succeeded", result.Succeeded).Int("failed", result.Failed).Msg("Provisioning pass finished")
	return result, nil
}

func (p *Provisioner) processJob(ctx context.Context, job models.ProvisioningJob) (outcome JobOutcome) {
	logger := LogForJob(job.ID, job.Domain, job.TenantID)
	outcome = JobOutcome{ID: job.ID, TenantID: job.TenantID, Domain: job.Domain}
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Stack().Msgf("recovered panic while provisioning: %v", r)
			outcome.OK = false
			outcome.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	provisional := ProvisionalError
	if err := p.jobs.IncrementAttempts(ctx, job.ID, &provisional); err != nil {
		logger.Error().Err(err).Msg("error incrementing job attempts, skipping job")
		outcome.Error = err.Error()
		return outcome
	}

	res := p.panel.CreateDomainAlias(ctx, p.cfg.SiteName, job.Domain)
	outcome.Status = res.Status
	event := notifications.DomainEvent{
		TenantID: job.TenantID,
		Domain:   job.Domain,
		JobID:    job.ID,
		Attempts: job.Attempts + 1,
	}

	if res.OK {
		if err := p.jobs.MarkSuccess(ctx, job.ID); err != nil {
			logger.Error().Err(err).Msg("alias created but job could not be marked as success")
			outcome.Error = err.Error()
			return outcome
		}
		outcome.OK = true
		p.metrics.RecordJobResult(config.JobStatusSuccess)
		logger.Info().Msg("Alias created")
		event.Status = config.JobStatusSuccess
		p.notify(ctx, logger, notifications.DomainAliasProvisioned, event)
		return outcome
	}

	outcome.Error = FailureMessage(res)
	if err := p.jobs.MarkFailed(ctx, job.ID, outcome.Error); err != nil {
		logger.Error().Err(err).Msg("error marking job as failed")
	}
	p.metrics.RecordJobResult(config.JobStatusFailed)
	logger.Warn().Bool("network_error", res.NetworkError).Msgf("Alias creation failed: %s", outcome.Error)
	event.Status = config.JobStatusFailed
	event.Error = outcome.Error
	p.notify(ctx, logger, notifications.DomainAliasFailed, event)
	return outcome
}

func (p *Provisioner) notify(ctx context.Context, logger *zerolog.Logger, name notifications.EventName, event notifications.DomainEvent) {
	res := p.notifier.Notify(ctx, name, event)
	switch {
	case res.Err != nil:
		logger.Warn().Err(res.Err).Str("event", name.String()).Msg("Notification was not delivered")
	case res.Sent:
		logger.Debug().Str("event", name.String()).Msg("Notification sent")
	}
}

func (p *Provisioner) setMarker(ctx context.Context, marker string) {
	if err := p.kv.Set(ctx, config.ProvisionLastRunKey, marker); err != nil {
		log.Warn().Err(err).Str("marker", marker).Msg("error recording provisioning pass marker")
	}
}

// FailureMessage formats a failed panel result the way it is stored on the job.
func FailureMessage(res plesk_client.Result) string {
	msg := res.Error
	if msg == "" {
		msg = "unknown"
	}
	return fmt.Sprintf("%s (http %d)", msg, res.Status)
}
