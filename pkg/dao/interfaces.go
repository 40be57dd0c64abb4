package dao

import (
	"context"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"gorm.io/gorm"
)

type DaoRegistry struct {
	Tenant          TenantDao
	TenantDomain    TenantDomainDao
	SystemKV        SystemKVDao
	ProvisioningJob ProvisioningJobDao
}

func GetDaoRegistry(db *gorm.DB) *DaoRegistry {
	reg := DaoRegistry{
		Tenant:          GetTenantDao(db),
		TenantDomain:    GetTenantDomainDao(db),
		SystemKV:        GetSystemKVDao(db),
		ProvisioningJob: GetProvisioningJobDao(db),
	}
	return &reg
}

//go:generate $GO_OUTPUT/mockery  --name TenantDao --filename tenants_mock.go --inpackage
type TenantDao interface {
	Create(ctx context.Context, slug string, name string) (models.Tenant, error)
	// Upsert creates the tenant or renames the one holding slug.
	Upsert(ctx context.Context, slug string, name string) (models.Tenant, error)
	Fetch(ctx context.Context, id int64) (models.Tenant, error)
	FetchBySlug(ctx context.Context, slug string) (models.Tenant, error)
	// FindByHost returns the tenant owning the tenant_domains row for host.
	FindByHost(ctx context.Context, host string) (models.Tenant, error)
}

//go:generate $GO_OUTPUT/mockery  --name TenantDomainDao --filename tenant_domains_mock.go --inpackage
type TenantDomainDao interface {
	// ListForTenant returns the tenant's domains, primary first then newest.
	ListForTenant(ctx context.Context, tenantID int64) ([]models.TenantDomain, error)
	FindByDomain(ctx context.Context, domain string) (models.TenantDomain, error)
	// DomainExists reports whether domain is registered to any tenant other than excludeTenantID.
	// Pass 0 to check every tenant.
	DomainExists(ctx context.Context, domain string, excludeTenantID int64) (bool, error)
	// AddCustom stores a custom domain, clearing the tenant's other primaries when makePrimary is set.
	AddCustom(ctx context.Context, tenantID int64, domain string, makePrimary bool, verifiedAt *time.Time) (models.TenantDomain, error)
	UpsertSubdomain(ctx context.Context, tenantID int64, domain string) (models.TenantDomain, error)
	UpsertPlatformDomain(ctx context.Context, tenantID int64, domain string) (models.TenantDomain, error)
}

//go:generate $GO_OUTPUT/mockery  --name SystemKVDao --filename system_kv_mock.go --inpackage
type SystemKVDao interface {
	Get(ctx context.Context, key string) (*models.SystemKV, error)
	Set(ctx context.Context, key string, value string) error
}

//go:generate $GO_OUTPUT/mockery  --name ProvisioningJobDao --filename provisioning_jobs_mock.go --inpackage
type ProvisioningJobDao interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.ProvisioningJob, error)
}
