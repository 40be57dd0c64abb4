package dao

import (
	"context"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"gorm.io/gorm"
)

// DefaultRecentJobs is how many jobs the operations dashboard shows.
const DefaultRecentJobs = 200

type provisioningJobDaoImpl struct {
	db *gorm.DB
}

func GetProvisioningJobDao(db *gorm.DB) ProvisioningJobDao {
	return provisioningJobDaoImpl{
		db: db,
	}
}

// CountByStatus returns a count for every known status, zero when absent.
func (d provisioningJobDaoImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	// select status, count(*) from domain_provisioning_jobs group by status;
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := d.db.WithContext(ctx).
		Model(&models.ProvisioningJob{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, DBErrorToApi(err)
	}

	counts := make(map[string]int64, len(config.JobStatuses))
	for _, status := range config.JobStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListRecent returns the newest jobs first.
func (d provisioningJobDaoImpl) ListRecent(ctx context.Context, limit int) ([]models.ProvisioningJob, error) {
	if limit <= 0 {
		limit = DefaultRecentJobs
	}
	jobs := make([]models.ProvisioningJob, 0)
	err := d.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, DBErrorToApi(err)
	}
	return jobs, nil
}
