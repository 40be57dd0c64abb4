package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tenantDomainDaoImpl struct {
	db *gorm.DB
}

func GetTenantDomainDao(db *gorm.DB) TenantDomainDao {
	return tenantDomainDaoImpl{
		db: db,
	}
}

func (d tenantDomainDaoImpl) ListForTenant(ctx context.Context, tenantID int64) ([]models.TenantDomain, error) {
	domains := make([]models.TenantDomain, 0)
	err := d.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("is_primary DESC, id DESC").
		Find(&domains).Error
	if err != nil {
		return nil, DBErrorToApi(err)
	}
	return domains, nil
}

func (d tenantDomainDaoImpl) FindByDomain(ctx context.Context, domain string) (models.TenantDomain, error) {
	var found models.TenantDomain
	domain = domainname.Normalize(domain)
	result := d.db.WithContext(ctx).Where("domain = ?", domain).First(&found)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return found, &ce.DaoError{NotFound: true, Message: "Could not find domain " + domain}
		}
		return found, DBErrorToApi(result.Error)
	}
	return found, nil
}

func (d tenantDomainDaoImpl) DomainExists(ctx context.Context, domain string, excludeTenantID int64) (bool, error) {
	var count int64
	query := d.db.WithContext(ctx).
		Model(&models.TenantDomain{}).
		Where("domain = ?", domainname.Normalize(domain))
	if excludeTenantID > 0 {
		query = query.Where("tenant_id <> ?", excludeTenantID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, DBErrorToApi(err)
	}
	return count > 0, nil
}

func (d tenantDomainDaoImpl) AddCustom(ctx context.Context, tenantID int64, domain string, makePrimary bool, verifiedAt *time.Time) (models.TenantDomain, error) {
	row := models.TenantDomain{
		TenantID:   tenantID,
		Domain:     domain,
		Kind:       config.DomainKindCustom,
		IsPrimary:  makePrimary,
		VerifiedAt: verifiedAt,
	}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if makePrimary {
			if err := clearPrimary(tx, tenantID); err != nil {
				return err
			}
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return models.TenantDomain{}, domainWriteError(err, row.Domain)
	}
	return row, nil
}

// UpsertSubdomain renames the tenant's subdomain row, or creates it verified
// and non primary. Other domains of the tenant are left untouched.
func (d tenantDomainDaoImpl) UpsertSubdomain(ctx context.Context, tenantID int64, domain string) (models.TenantDomain, error) {
	var row models.TenantDomain
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.TenantDomain
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND kind = ?", tenantID, config.DomainKindSubdomain).
			Order("is_primary DESC, id ASC").
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return err
		}
		if len(existing) == 1 {
			row = existing[0]
			row.Domain = domain
			return tx.Model(&row).Update("domain", domainname.Normalize(domain)).Error
		}
		now := time.Now()
		row = models.TenantDomain{
			TenantID:   tenantID,
			Domain:     domain,
			Kind:       config.DomainKindSubdomain,
			VerifiedAt: &now,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return models.TenantDomain{}, domainWriteError(err, domainname.Normalize(domain))
	}
	row.Domain = domainname.Normalize(row.Domain)
	return row, nil
}

// UpsertPlatformDomain marks domain as the verified primary platform domain of
// the tenant, taking the row over if it already exists.
func (d tenantDomainDaoImpl) UpsertPlatformDomain(ctx context.Context, tenantID int64, domain string) (models.TenantDomain, error) {
	now := time.Now()
	row := models.TenantDomain{
		TenantID:   tenantID,
		Domain:     domain,
		Kind:       config.DomainKindPlatform,
		IsPrimary:  true,
		VerifiedAt: &now,
	}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearPrimary(tx, tenantID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain"}},
			DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "kind", "is_primary", "verified_at"}),
		}).Create(&row).Error
	})
	if err != nil {
		return models.TenantDomain{}, domainWriteError(err, row.Domain)
	}
	return d.FindByDomain(ctx, row.Domain)
}

func clearPrimary(tx *gorm.DB, tenantID int64) error {
	return tx.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.TenantDomain{}).
		Where("tenant_id = ? AND is_primary", tenantID).
		Update("is_primary", false).Error
}

func domainWriteError(err error, domain string) error {
	if isUniqueViolation(err) {
		return &ce.DaoError{Conflict: true, Message: fmt.Sprintf("Domain %s is already registered", domain), Err: err}
	}
	return DBErrorToApi(err)
}
