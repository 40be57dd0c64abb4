package models

import (
	"time"
)

const TableNameProvisioningJob = "domain_provisioning_jobs"

// ProvisioningJob is one queued panel operation for a tenant domain, unique
// on (tenant_id, domain, action). Rows are written by the job store, gorm
// only reads them for the operations dashboard.
type ProvisioningJob struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	TenantID    int64      `json:"tenant_id"`
	Domain      string     `json:"domain"`
	Action      string     `json:"action"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	LastError   *string    `json:"last_error"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

func (j *ProvisioningJob) TableName() string {
	return TableNameProvisioningJob
}
