package cache

import (
	"context"
	"testing"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	assert.NoError(t, c.SetTenantForHost(ctx, "quejas.acme.pe", models.Tenant{ID: 1, Slug: "acme"}))
	tenant, err := c.GetTenantForHost(ctx, "quejas.acme.pe")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, tenant)
	assert.NoError(t, c.ForgetHost(ctx, "quejas.acme.pe"))
}

func TestHostKey(t *testing.T) {
	assert.Equal(t, "tenant-host:quejas.acme.pe", hostKey("quejas.acme.pe"))
}
