package tasks

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogForJob returns a logger tagged with the provisioning job's identity.
func LogForJob(jobID int64, domain string, tenantID int64) *zerolog.Logger {
	logger := log.Logger.With().
		Int64("job_id", jobID).
		Str("domain", domain).
		Int64("tenant_id", tenantID).
		Logger()
	return &logger
}
