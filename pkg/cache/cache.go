// Package cache keeps host to tenant lookups out of the database.
package cache

import (
	"context"
	"errors"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("not found in cache")

//go:generate $GO_OUTPUT/mockery  --name Cache --filename cache_mock.go --inpackage
type Cache interface {
	GetTenantForHost(ctx context.Context, host string) (*models.Tenant, error)
	SetTenantForHost(ctx context.Context, host string, tenant models.Tenant) error
	// ForgetHost drops a cached mapping after the host changed owner or name.
	ForgetHost(ctx context.Context, host string) error
}

func Initialize() Cache {
	cfg := config.Get().Clients.Redis
	if cfg.Host != "" {
		return NewRedisCache(cfg)
	}
	log.Logger.Warn().Msg("No application cache in use")
	return NewNoOpCache()
}
