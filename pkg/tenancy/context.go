// Package tenancy resolves the tenant a request is addressed to from its host.
package tenancy

import (
	"context"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
)

type Source string

const (
	SourceDomain    Source = "domain"
	SourceSubdomain Source = "subdomain"
	SourceDefault   Source = "default"
	SourceUnknown   Source = "unknown"
)

const UnknownTenantSlug = "unknown"

// TenantContext is the tenant resolved for one request.
type TenantContext struct {
	Tenant models.Tenant
	Host   string
	Source Source
}

// Known is false for the placeholder tenant of unmatched hosts.
func (tc TenantContext) Known() bool {
	return tc.Tenant.ID != 0
}

type tenantContextKey struct{}

func WithTenant(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// FromContext returns the tenant stored by WithTenant.
func FromContext(ctx context.Context) (TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey{}).(TenantContext)
	return tc, ok
}

func unknownTenant(host string) TenantContext {
	return TenantContext{
		Tenant: models.Tenant{ID: 0, Slug: UnknownTenantSlug, Name: "Unknown"},
		Host:   host,
		Source: SourceUnknown,
	}
}
