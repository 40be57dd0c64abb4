package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultExpiration applies when clients.redis.expiration is unset.
const DefaultExpiration = 5 * time.Minute

type redisCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisCache(cfg config.Redis) *redisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	expiration := cfg.Expiration
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &redisCache{
		client:     client,
		expiration: expiration,
	}
}

func hostKey(host string) string {
	return "tenant-host:" + host
}

// GetTenantForHost returns ErrNotFound when the host was never cached or expired.
func (c *redisCache) GetTenantForHost(ctx context.Context, host string) (*models.Tenant, error) {
	buf, err := c.get(ctx, hostKey(host))
	if err != nil {
		return nil, err
	}

	var tenant models.Tenant
	err = json.Unmarshal(buf, &tenant)
	if err != nil {
		return nil, fmt.Errorf("redis unmarshal error: %w", err)
	}
	return &tenant, nil
}

func (c *redisCache) SetTenantForHost(ctx context.Context, host string, tenant models.Tenant) error {
	buf, err := json.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("unable to marshal for Redis cache: %w", err)
	}
	if err := c.client.Set(ctx, hostKey(host), buf, c.expiration).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (c *redisCache) ForgetHost(ctx context.Context, host string) error {
	if err := c.client.Del(ctx, hostKey(host)).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.Get(ctx, key)
	if errors.Is(cmd.Err(), redis.Nil) {
		return nil, ErrNotFound
	} else if cmd.Err() != nil {
		return nil, fmt.Errorf("redis error: %w", cmd.Err())
	}

	buf, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("redis bytes conversion error: %w", err)
	}
	return buf, nil
}
