package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	m "github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type ProvisionerSuite struct {
	suite.Suite
	jobs     *queue.MockJobStore
	kv       *dao.MockSystemKVDao
	panel    *plesk_client.MockPleskClient
	notifier *notifications.MockNotifier
	metrics  *m.Metrics
	cfg      config.Plesk
}

func TestProvisionerSuite(t *testing.T) {
	suite.Run(t, new(ProvisionerSuite))
}

func (s *ProvisionerSuite) SetupTest() {
	s.jobs = queue.NewMockJobStore(s.T())
	s.kv = dao.NewMockSystemKVDao(s.T())
	s.panel = plesk_client.NewMockPleskClient(s.T())
	s.notifier = notifications.NewMockNotifier(s.T())
	s.metrics = m.NewMetrics(prometheus.NewRegistry())
	s.cfg = config.Plesk{
		URL:           "https://panel.example.com:8443/enterprise/control/agent.php",
		APIKey:        "secret",
		SiteName:      "ldr.example.com",
		AutoProvision: true,
		BatchSize:     25,
	}
}

func (s *ProvisionerSuite) provisioner() *Provisioner {
	return NewProvisioner(s.cfg, s.jobs, s.kv, s.panel, s.notifier, s.metrics)
}

func pendingJob(id int64, domain string) models.ProvisioningJob {
	return models.ProvisioningJob{
		ID:       id,
		TenantID: 10 + id,
		Domain:   domain,
		Action:   config.ActionAliasCreate,
		Status:   config.JobStatusPending,
	}
}

func (s *ProvisionerSuite) TestDisabledIsNoOp() {
	defer goleak.VerifyNone(s.T())
	s.cfg.AutoProvision = false

	res, err := s.provisioner().RunPass(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PassDisabled, res.Outcome)
	s.jobs.AssertNotCalled(s.T(), "ListPending", mock.Anything, mock.Anything)
}

func (s *ProvisionerSuite) TestMissingSiteNameIsConfigError() {
	s.cfg.SiteName = ""

	_, err := s.provisioner().RunPass(context.Background())
	assert.ErrorIs(s.T(), err, ce.ErrConfigIncomplete)
	assert.ErrorContains(s.T(), err, "plesk.site_name")
	s.jobs.AssertNotCalled(s.T(), "ListPending", mock.Anything, mock.Anything)
}

func (s *ProvisionerSuite) TestNoPendingWritesMarker() {
	defer goleak.VerifyNone(s.T())
	ctx := context.Background()
	s.jobs.On("ListPending", ctx, 25).Return([]models.ProvisioningJob{}, nil)
	s.kv.On("Set", ctx, config.ProvisionLastRunKey, config.PassMarkerNoPending).Return(nil).Once()

	res, err := s.provisioner().RunPass(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PassNoPending, res.Outcome)
	assert.Empty(s.T(), res.Jobs)
}

func (s *ProvisionerSuite) TestBatchContinuesAfterFailure() {
	defer goleak.VerifyNone(s.T())
	ctx := context.Background()
	jobCtx := mock.Anything
	first := pendingJob(1, "a.example.com")
	second := pendingJob(2, "b.example.com")
	third := pendingJob(3, "c.example.com")

	var markers []string
	s.kv.On("Set", ctx, config.ProvisionLastRunKey, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { markers = append(markers, args.String(2)) }).
		Return(nil)
	s.jobs.On("ListPending", ctx, 25).Return([]models.ProvisioningJob{first, second, third}, nil)
	for _, job := range []models.ProvisioningJob{first, second, third} {
		s.jobs.On("IncrementAttempts", jobCtx, job.ID, mock.MatchedBy(func(e *string) bool {
			return e != nil && *e == ProvisionalError
		})).Return(nil).Once()
	}

	s.panel.On("CreateDomainAlias", jobCtx, "ldr.example.com", "a.example.com").
		Return(plesk_client.Result{OK: true, Status: 200})
	s.panel.On("CreateDomainAlias", jobCtx, "ldr.example.com", "b.example.com").
		Return(plesk_client.Result{Status: 200, Error: "plesk_error: Domain exists (code 1007)"})
	s.panel.On("CreateDomainAlias", jobCtx, "ldr.example.com", "c.example.com").
		Return(plesk_client.Result{Status: 0, Error: "connection refused", NetworkError: true})

	s.jobs.On("MarkSuccess", jobCtx, int64(1)).Return(nil).Once()
	s.jobs.On("MarkFailed", jobCtx, int64(2), "plesk_error: Domain exists (code 1007) (http 200)").Return(nil).Once()
	s.jobs.On("MarkFailed", jobCtx, int64(3), "connection refused (http 0)").Return(nil).Once()

	s.notifier.On("Notify", jobCtx, notifications.DomainAliasProvisioned, mock.MatchedBy(func(e notifications.DomainEvent) bool {
		return e.JobID == 1 && e.Attempts == 1 && e.Status == config.JobStatusSuccess
	})).Return(notifications.SendResult{Sent: true}).Once()
	s.notifier.On("Notify", jobCtx, notifications.DomainAliasFailed, mock.MatchedBy(func(e notifications.DomainEvent) bool {
		return e.JobID == 2 && e.Error != ""
	})).Return(notifications.SendResult{Err: errors.New("broker down")}).Once()
	s.notifier.On("Notify", jobCtx, notifications.DomainAliasFailed, mock.MatchedBy(func(e notifications.DomainEvent) bool {
		return e.JobID == 3
	})).Return(notifications.SendResult{Skipped: true}).Once()

	res, err := s.provisioner().RunPass(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PassFinished, res.Outcome)
	assert.Equal(s.T(), 1, res.Succeeded)
	assert.Equal(s.T(), 2, res.Failed)
	require.Len(s.T(), res.Jobs, 3)
	assert.True(s.T(), res.Jobs[0].OK)
	assert.Equal(s.T(), "connection refused (http 0)", res.Jobs[2].Error)
	assert.Equal(s.T(), []string{config.PassMarkerStarted, config.PassMarkerFinished}, markers)

	assert.Equal(s.T(), float64(1), testutil.ToFloat64(s.metrics.ProvisioningJobsTotal.WithLabelValues(config.JobStatusSuccess)))
	assert.Equal(s.T(), float64(2), testutil.ToFloat64(s.metrics.ProvisioningJobsTotal.WithLabelValues(config.JobStatusFailed)))
}

func (s *ProvisionerSuite) TestPanicLeavesJobPending() {
	defer goleak.VerifyNone(s.T())
	ctx := context.Background()
	first := pendingJob(1, "a.example.com")
	second := pendingJob(2, "b.example.com")

	s.kv.On("Set", ctx, config.ProvisionLastRunKey, mock.AnythingOfType("string")).Return(nil)
	s.jobs.On("ListPending", ctx, 25).Return([]models.ProvisioningJob{first, second}, nil)
	s.jobs.On("IncrementAttempts", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	s.panel.On("CreateDomainAlias", mock.Anything, "ldr.example.com", "a.example.com").
		Return(func(context.Context, string, string) plesk_client.Result { panic("boom") })
	s.panel.On("CreateDomainAlias", mock.Anything, "ldr.example.com", "b.example.com").
		Return(plesk_client.Result{OK: true, Status: 200})
	s.jobs.On("MarkSuccess", mock.Anything, int64(2)).Return(nil).Once()
	s.notifier.On("Notify", mock.Anything, notifications.DomainAliasProvisioned, mock.Anything).
		Return(notifications.SendResult{Skipped: true}).Once()

	res, err := s.provisioner().RunPass(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, res.Succeeded)
	assert.Equal(s.T(), 1, res.Failed)
	assert.Contains(s.T(), res.Jobs[0].Error, "panic: boom")
	s.jobs.AssertNotCalled(s.T(), "MarkFailed", mock.Anything, int64(1), mock.Anything)
}

func (s *ProvisionerSuite) TestCancelledPassLeavesRemainingPending() {
	ctx, cancel := context.WithCancel(context.Background())
	first := pendingJob(1, "a.example.com")
	second := pendingJob(2, "b.example.com")

	s.kv.On("Set", ctx, config.ProvisionLastRunKey, config.PassMarkerStarted).Return(nil).Once()
	s.jobs.On("ListPending", ctx, 25).Return([]models.ProvisioningJob{first, second}, nil)
	s.jobs.On("IncrementAttempts", mock.Anything, int64(1), mock.Anything).Return(nil).Once()
	s.panel.On("CreateDomainAlias", mock.Anything, "ldr.example.com", "a.example.com").
		Run(func(mock.Arguments) { cancel() }).
		Return(plesk_client.Result{OK: true, Status: 200})
	s.jobs.On("MarkSuccess", mock.Anything, int64(1)).Return(nil).Once()
	s.notifier.On("Notify", mock.Anything, notifications.DomainAliasProvisioned, mock.Anything).
		Return(notifications.SendResult{Skipped: true}).Once()

	res, err := s.provisioner().RunPass(ctx)
	assert.ErrorIs(s.T(), err, context.Canceled)
	assert.Equal(s.T(), PassInterrupted, res.Outcome)
	assert.Equal(s.T(), 1, res.Succeeded)
	s.jobs.AssertNotCalled(s.T(), "IncrementAttempts", mock.Anything, int64(2), mock.Anything)
}

func (s *ProvisionerSuite) TestPassesDoNotOverlap() {
	ctx := context.Background()
	p := s.provisioner()
	p.running.Lock()
	_, err := p.RunPass(ctx)
	p.running.Unlock()
	assert.ErrorIs(s.T(), err, ErrPassRunning)
}

func (s *ProvisionerSuite) TestMarkerFailureDoesNotAbort() {
	ctx := context.Background()
	s.jobs.On("ListPending", ctx, 25).Return([]models.ProvisioningJob(nil), nil)
	s.kv.On("Set", ctx, config.ProvisionLastRunKey, config.PassMarkerNoPending).Return(errors.New("db down"))

	res, err := s.provisioner().RunPass(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PassNoPending, res.Outcome)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "plesk_error (http 500)", FailureMessage(plesk_client.Result{Status: 500, Error: "plesk_error"}))
	assert.Equal(t, "unknown (http 502)", FailureMessage(plesk_client.Result{Status: 502}))
}
