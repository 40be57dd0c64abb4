package dao

import (
	"context"
	"fmt"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tenantDaoImpl struct {
	db *gorm.DB
}

func GetTenantDao(db *gorm.DB) TenantDao {
	return tenantDaoImpl{
		db: db,
	}
}

func (t tenantDaoImpl) Create(ctx context.Context, slug string, name string) (models.Tenant, error) {
	tenant := models.Tenant{Slug: slug, Name: name}
	if err := t.db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return models.Tenant{}, DBErrorToApi(err)
	}
	return tenant, nil
}

func (t tenantDaoImpl) Upsert(ctx context.Context, slug string, name string) (models.Tenant, error) {
	tenant := models.Tenant{Slug: slug, Name: name}
	result := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&tenant)
	if result.Error != nil {
		return models.Tenant{}, DBErrorToApi(result.Error)
	}
	return t.FetchBySlug(ctx, tenant.Slug)
}

func (t tenantDaoImpl) Fetch(ctx context.Context, id int64) (models.Tenant, error) {
	var tenant models.Tenant
	result := t.db.WithContext(ctx).Where("id = ?", id).First(&tenant)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return tenant, &ce.DaoError{NotFound: true, Message: fmt.Sprintf("Could not find tenant %d", id)}
		}
		return tenant, DBErrorToApi(result.Error)
	}
	return tenant, nil
}

func (t tenantDaoImpl) FetchBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	var tenant models.Tenant
	result := t.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return tenant, &ce.DaoError{NotFound: true, Message: "Could not find tenant with slug " + slug}
		}
		return tenant, DBErrorToApi(result.Error)
	}
	return tenant, nil
}

func (t tenantDaoImpl) FindByHost(ctx context.Context, host string) (models.Tenant, error) {
	var tenant models.Tenant
	result := t.db.WithContext(ctx).
		Joins("JOIN "+models.TableNameTenantDomain+" ON "+models.TableNameTenantDomain+".tenant_id = "+models.TableNameTenant+".id").
		Where(models.TableNameTenantDomain+".domain = ?", host).
		First(&tenant)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return tenant, &ce.DaoError{NotFound: true, Message: "No tenant for host " + host}
		}
		return tenant, DBErrorToApi(result.Error)
	}
	return tenant, nil
}
