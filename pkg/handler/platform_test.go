package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/api"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/test"
	test_handler "github.com/arca-digital/complaints-book-backend/pkg/test/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PlatformSuite struct {
	HandlerSuite
}

func TestPlatformSuite(t *testing.T) {
	suite.Run(t, new(PlatformSuite))
}

func mockJob(id int64, status string) models.ProvisioningJob {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.ProvisioningJob{
		ID:        id,
		TenantID:  test_handler.MockTenant.ID,
		Domain:    "reclamos.acme.pe",
		Action:    config.ActionAliasCreate,
		Status:    status,
		CreatedAt: created,
	}
}

func (s *PlatformSuite) TestListJobs() {
	t := s.T()
	failed := mockJob(2, config.JobStatusFailed)
	lastError := "HTTP 200: domain alias already exists"
	failed.LastError = &lastError
	updated := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

	s.reg.ProvisioningJob.On("CountByStatus", test.MockCtx()).
		Return(map[string]int64{config.JobStatusPending: 1, config.JobStatusSuccess: 0, config.JobStatusFailed: 1}, nil).Once()
	s.reg.ProvisioningJob.On("ListRecent", test.MockCtx(), api.DefaultJobsLimit).
		Return([]models.ProvisioningJob{failed, mockJob(1, config.JobStatusPending)}, nil).Once()
	s.reg.SystemKV.On("Get", test.MockCtx(), config.ProvisionLastRunKey).
		Return(&models.SystemKV{Key: config.ProvisionLastRunKey, Value: config.PassMarkerFinished, UpdatedAt: updated}, nil).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/jobs"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := api.JobsDashboardResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(1), response.Counts[config.JobStatusFailed])
	require.Len(t, response.Jobs, 2)
	assert.Equal(t, lastError, response.Jobs[0].LastError)
	assert.Empty(t, response.Jobs[1].LastError)
	require.NotNil(t, response.LastRun)
	assert.Equal(t, config.PassMarkerFinished, response.LastRun.Marker)
	assert.True(t, response.LastRun.UpdatedAt.Equal(updated))

	assert.Equal(t, "https://panel.example.com:8443/enterprise/control/agent.php", response.Panel.URL)
	assert.True(t, response.Panel.HasKey)
	assert.True(t, response.Panel.AutoProvision)
	assert.Equal(t, 25, response.Panel.BatchSize)
	assert.Empty(t, response.Panel.Interval)
	assert.NotContains(t, string(body), "panel-key")
	assert.NotContains(t, string(body), "admin:pw")
}

func (s *PlatformSuite) TestListJobsWithLimitAndNoMarker() {
	t := s.T()
	s.reg.ProvisioningJob.On("CountByStatus", test.MockCtx()).Return(map[string]int64{}, nil).Once()
	s.reg.ProvisioningJob.On("ListRecent", test.MockCtx(), 10).Return(nil, nil).Once()
	s.reg.SystemKV.On("Get", test.MockCtx(), config.ProvisionLastRunKey).Return(nil, nil).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/jobs?limit=10"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := api.JobsDashboardResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Nil(t, response.LastRun)
	assert.Empty(t, response.Jobs)
}

func (s *PlatformSuite) TestListJobsInvalidLimit() {
	code, _ := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/jobs?limit=abc"))
	assert.Equal(s.T(), http.StatusBadRequest, code)
}

func (s *PlatformSuite) TestOperatorTokenRequired() {
	code, _ := s.serve(httptest.NewRequest(http.MethodGet, "/platform/jobs", nil))
	assert.Equal(s.T(), http.StatusUnauthorized, code)

	req := httptest.NewRequest(http.MethodGet, "/platform/jobs", nil)
	req.Header.Set("X-Operator-Token", "guess")
	code, _ = s.serve(req)
	assert.Equal(s.T(), http.StatusForbidden, code)
}

func (s *PlatformSuite) TestRunPass() {
	t := s.T()
	s.runner.On("RunPass", test.MockCtx()).Return(tasks.PassResult{
		Outcome:   tasks.PassFinished,
		Succeeded: 1,
		Jobs:      []tasks.JobOutcome{{ID: 1, TenantID: test_handler.MockTenant.ID, Domain: "reclamos.acme.pe", OK: true, Status: 200}},
	}, nil).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/run"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := tasks.PassResult{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, tasks.PassFinished, response.Outcome)
	assert.Equal(t, 1, response.Succeeded)
	require.Len(t, response.Jobs, 1)
	assert.True(t, response.Jobs[0].OK)
}

func (s *PlatformSuite) TestRunPassAlreadyRunning() {
	s.runner.On("RunPass", test.MockCtx()).Return(tasks.PassResult{}, tasks.ErrPassRunning).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/run"))
	assert.Equal(s.T(), http.StatusConflict, code)
	assert.Contains(s.T(), string(body), "already running")
}

func (s *PlatformSuite) TestRetryJob() {
	t := s.T()
	job := mockJob(7, config.JobStatusPending)
	job.Attempts = 3
	s.jobs.On("Retry", test.MockCtx(), int64(7)).Return(job, queue.EnqueueRequeued, nil).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/7/retry"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := api.RetryJobResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "requeued", response.Outcome)
	assert.Equal(t, config.JobStatusPending, response.Job.Status)
	assert.Equal(t, 3, response.Job.Attempts)
}

func (s *PlatformSuite) TestRetryJobInvalidID() {
	code, _ := s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/abc/retry"))
	assert.Equal(s.T(), http.StatusBadRequest, code)

	code, _ = s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/0/retry"))
	assert.Equal(s.T(), http.StatusBadRequest, code)
}

func (s *PlatformSuite) TestRetryJobNotFound() {
	s.jobs.On("Retry", test.MockCtx(), int64(404)).
		Return(models.ProvisioningJob{}, queue.EnqueueOutcome(""), &ce.DaoError{Message: "Could not find provisioning job", NotFound: true}).Once()

	code, _ := s.serve(test_handler.NewOperatorRequest(http.MethodPost, "/platform/jobs/404/retry"))
	assert.Equal(s.T(), http.StatusNotFound, code)
}

func (s *PlatformSuite) TestPingPanel() {
	t := s.T()
	s.panel.On("Ping", test.MockCtx()).Return(plesk_client.Result{OK: true, Status: 200, Body: "<packet><server/></packet>"}).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/plesk/ping"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := api.PanelPingResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.True(t, response.OK)
	assert.Equal(t, 200, response.Status)
	assert.Equal(t, "<packet><server/></packet>", response.Body)
}

func (s *PlatformSuite) TestPingPanelErrorIsRelayed() {
	t := s.T()
	s.panel.On("Ping", test.MockCtx()).Return(plesk_client.Result{
		Status:       200,
		Body:         "<packet><status>error</status><errtext>Access to API is disabled</errtext></packet>",
		Error:        "Access to API is disabled",
		DetailSource: plesk_client.SourceRegex,
	}).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/plesk/ping"))
	require.Equal(t, http.StatusOK, code, string(body))

	response := api.PanelPingResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.False(t, response.OK)
	assert.Equal(t, 200, response.Status)
	assert.Equal(t, "Access to API is disabled", response.Error)
	assert.Equal(t, string(plesk_client.SourceRegex), response.DetailSource)
	assert.Contains(t, response.Body, "<errtext>")
}

func (s *PlatformSuite) TestPingPanelUnreachable() {
	t := s.T()
	s.panel.On("Ping", test.MockCtx()).Return(plesk_client.Result{
		Error:        "dial tcp: connection refused",
		NetworkError: true,
	}).Once()

	code, body := s.serve(test_handler.NewOperatorRequest(http.MethodGet, "/platform/plesk/ping"))
	require.Equal(t, http.StatusBadGateway, code, string(body))

	response := api.PanelPingResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.True(t, response.NetworkError)
	assert.Equal(t, 0, response.Status)
}
