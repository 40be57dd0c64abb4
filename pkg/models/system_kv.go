package models

import (
	"time"
)

const TableNameSystemKV = "system_kv"

// SystemKV holds small operational values such as the last provisioning pass marker.
type SystemKV struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (kv *SystemKV) TableName() string {
	return TableNameSystemKV
}
