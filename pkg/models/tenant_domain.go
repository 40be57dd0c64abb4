package models

import (
	"fmt"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	"gorm.io/gorm"
)

const TableNameTenantDomain = "tenant_domains"

// TenantDomain maps a host name onto a tenant. Domains are unique across
// tenants and a tenant has at most one primary domain.
type TenantDomain struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	TenantID   int64      `json:"tenant_id" gorm:"not null"`
	Domain     string     `json:"domain" gorm:"uniqueIndex;not null"`
	Kind       string     `json:"kind" gorm:"not null"`
	IsPrimary  bool       `json:"is_primary" gorm:"not null;default:false"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (d *TenantDomain) BeforeSave(tx *gorm.DB) error {
	d.Domain = domainname.Normalize(d.Domain)
	if d.Domain == "" {
		return Error{Message: "Domain cannot be empty", Validation: true}
	}
	switch d.Kind {
	case config.DomainKindSubdomain, config.DomainKindCustom, config.DomainKindPlatform:
	default:
		return Error{Message: fmt.Sprintf("Unknown domain kind %q", d.Kind), Validation: true}
	}
	return nil
}

func (d *TenantDomain) Verified() bool {
	return d.VerifiedAt != nil
}

func (d *TenantDomain) TableName() string {
	return TableNameTenantDomain
}
