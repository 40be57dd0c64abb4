package models

import (
	"time"

	"gorm.io/gorm"
)

const TableNameTenant = "tenants"

// Tenant is a company using the complaints book. Its slug doubles as the
// label of its platform subdomain.
type Tenant struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tenant) BeforeSave(tx *gorm.DB) error {
	t.Slug = normalizeSlug(t.Slug)
	if t.Slug == "" {
		return Error{Message: "Tenant slug cannot be empty", Validation: true}
	}
	return nil
}

func (t *Tenant) TableName() string {
	return TableNameTenant
}
