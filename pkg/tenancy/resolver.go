package tenancy

import (
	"context"
	"errors"

	"github.com/arca-digital/complaints-book-backend/pkg/cache"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/rs/zerolog"
)

//go:generate $GO_OUTPUT/mockery  --name Resolver --filename resolver_mock.go --inpackage
type Resolver interface {
	// Resolve maps a request host onto a tenant. Hosts matching nothing
	// resolve to the unknown tenant, errors are reserved for storage failures.
	Resolve(ctx context.Context, host string) (TenantContext, error)
}

type resolverImpl struct {
	platform config.Platform
	tenants  dao.TenantDao
	cache    cache.Cache
	metrics  *instrumentation.Metrics
}

func NewResolver(platform config.Platform, tenants dao.TenantDao, c cache.Cache, metrics *instrumentation.Metrics) Resolver {
	return &resolverImpl{
		platform: platform,
		tenants:  tenants,
		cache:    c,
		metrics:  metrics,
	}
}

func (r *resolverImpl) Resolve(ctx context.Context, rawHost string) (TenantContext, error) {
	host := domainname.Normalize(rawHost)
	tc, err := r.resolve(ctx, host)
	if err != nil {
		return tc, err
	}
	r.metrics.RecordTenantResolution(string(tc.Source))
	return tc, nil
}

func (r *resolverImpl) resolve(ctx context.Context, host string) (TenantContext, error) {
	logger := zerolog.Ctx(ctx)

	if host != "" {
		tenant, found, err := r.byHost(ctx, host)
		if err != nil {
			return TenantContext{}, err
		}
		if found {
			return TenantContext{Tenant: tenant, Host: host, Source: SourceDomain}, nil
		}
	}

	if r.platform.AllowSubdomainTenants {
		if label, ok := domainname.FirstLabel(host, r.platform.BaseDomain); ok {
			tenant, found, err := r.bySlug(ctx, label)
			if err != nil {
				return TenantContext{}, err
			}
			if found {
				return TenantContext{Tenant: tenant, Host: host, Source: SourceSubdomain}, nil
			}
		}
	}

	if slug := r.platform.DefaultTenantSlug; slug != "" {
		tenant, found, err := r.bySlug(ctx, slug)
		if err != nil {
			return TenantContext{}, err
		}
		if found {
			return TenantContext{Tenant: tenant, Host: host, Source: SourceDefault}, nil
		}
	}

	logger.Debug().Str("host", host).Msg("no tenant for host")
	return unknownTenant(host), nil
}

func (r *resolverImpl) byHost(ctx context.Context, host string) (models.Tenant, bool, error) {
	cached, err := r.cache.GetTenantForHost(ctx, host)
	if err == nil && cached != nil {
		return *cached, true, nil
	}
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("host", host).Msg("tenant cache lookup failed")
	}

	tenant, err := r.tenants.FindByHost(ctx, host)
	if isNotFound(err) {
		return models.Tenant{}, false, nil
	}
	if err != nil {
		return models.Tenant{}, false, err
	}
	if err := r.cache.SetTenantForHost(ctx, host, tenant); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("host", host).Msg("could not cache tenant")
	}
	return tenant, true, nil
}

func (r *resolverImpl) bySlug(ctx context.Context, slug string) (models.Tenant, bool, error) {
	tenant, err := r.tenants.FetchBySlug(ctx, slug)
	if isNotFound(err) {
		return models.Tenant{}, false, nil
	}
	if err != nil {
		return models.Tenant{}, false, err
	}
	return tenant, true, nil
}

func isNotFound(err error) bool {
	var daoError *ce.DaoError
	return errors.As(err, &daoError) && daoError.NotFound
}
