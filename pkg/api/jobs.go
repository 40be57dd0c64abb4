package api

import "time"

const DefaultJobsLimit = 200

type ProvisioningJobResponse struct {
	ID          int64      `json:"id"`                   // Identifier of the job
	TenantID    int64      `json:"tenant_id"`            // Tenant the domain belongs to
	Domain      string     `json:"domain"`               // Domain to alias on the panel
	Action      string     `json:"action"`               // Panel operation, alias_create
	Status      string     `json:"status"`               // pending, success or failed
	Attempts    int        `json:"attempts"`             // Number of processing attempts
	LastError   string     `json:"last_error,omitempty"` // Error of the last attempt
	CreatedAt   time.Time  `json:"created_at"`           // Time the job was first queued
	ProcessedAt *time.Time `json:"processed_at"`         // Time of the last attempt
}

type LastRunResponse struct {
	Marker    string    `json:"marker"`     // started, finished or no_pending
	UpdatedAt time.Time `json:"updated_at"` // Time the marker was written
}

// PanelSummary describes the panel configuration without exposing secrets.
type PanelSummary struct {
	AutoProvision bool   `json:"auto"`       // Whether new domains are queued
	SiteName      string `json:"site"`       // Panel site aliases are attached to
	URL           string `json:"url"`        // Panel API URL without credentials or query
	VerifyTLS     bool   `json:"tls"`        // Whether the panel certificate is verified
	HasKey        bool   `json:"has_key"`    // Whether an API key is configured
	BatchSize     int    `json:"batch_size"` // Jobs processed per pass
	Interval      string `json:"interval"`   // In-process pass interval, empty when passes run from cron
}

type JobsDashboardResponse struct {
	Counts  map[string]int64          `json:"counts"`   // Jobs per status
	Jobs    []ProvisioningJobResponse `json:"jobs"`     // Most recent jobs, newest first
	LastRun *LastRunResponse          `json:"last_run"` // Marker of the last provisioning pass
	Panel   PanelSummary              `json:"panel"`    // Panel configuration summary
}

type RetryJobResponse struct {
	Job     ProvisioningJobResponse `json:"job"`     // Job after the retry
	Outcome string                  `json:"outcome"` // requeued, already_pending or already_provisioned
}

type PanelPingResponse struct {
	OK           bool   `json:"ok"`                      // Whether the panel answered successfully
	Status       int    `json:"status"`                  // HTTP status of the panel answer
	Error        string `json:"error,omitempty"`         // Panel or transport error
	DetailSource string `json:"detail_source,omitempty"` // Parser that produced the error
	NetworkError bool   `json:"network_error,omitempty"` // Set when the panel could not be reached
	Body         string `json:"body,omitempty"`          // Raw panel answer
}
