package dao

import (
	"context"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"gorm.io/gorm"
)

type systemKVDaoImpl struct {
	db *gorm.DB
}

func GetSystemKVDao(db *gorm.DB) SystemKVDao {
	return systemKVDaoImpl{
		db: db,
	}
}

// Get returns nil when the key was never written.
func (kvDao systemKVDaoImpl) Get(ctx context.Context, key string) (*models.SystemKV, error) {
	var kv models.SystemKV
	result := kvDao.db.WithContext(ctx).Where("key = ?", key).First(&kv)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &kv, nil
}

func (kvDao systemKVDaoImpl) Set(ctx context.Context, key string, value string) error {
	kv := models.SystemKV{Key: key, Value: value}
	return kvDao.db.WithContext(ctx).
		Where("key = ?", key).
		Assign(map[string]interface{}{"value": value}).
		FirstOrCreate(&kv).Error
}
