package cache

import (
	"context"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
)

// A noop cache doesn't actually cache anything, but provides an implementation
// of the caching interfaces
type noOpCache struct {
}

func NewNoOpCache() *noOpCache {
	return &noOpCache{}
}

func (c *noOpCache) GetTenantForHost(ctx context.Context, host string) (*models.Tenant, error) {
	return nil, ErrNotFound
}

func (c *noOpCache) SetTenantForHost(ctx context.Context, host string, tenant models.Tenant) error {
	return nil
}

func (c *noOpCache) ForgetHost(ctx context.Context, host string) error {
	return nil
}
