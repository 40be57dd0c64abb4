package domains

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/cache"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/rs/zerolog"
)

// ErrNotVerified is returned with the verification result when a domain has
// to be verified before it can be added.
var ErrNotVerified = errors.New("domain not verified")

// AddDomainResult describes a registration attempt. Verification and Hint are
// filled in when the domain failed verification.
type AddDomainResult struct {
	Domain               *models.TenantDomain `json:"domain,omitempty"`
	Verification         VerificationResult   `json:"verification"`
	Hint                 string               `json:"hint,omitempty"`
	ProvisioningEnqueued bool                 `json:"provisioning_enqueued"`
	EnqueueOutcome       string               `json:"enqueue_outcome,omitempty"`
	EnqueueError         string               `json:"enqueue_error,omitempty"`
}

type Registrar struct {
	platform config.Platform
	domains  config.Domains
	plesk    config.Plesk
	verifier Verifier
	dao      dao.TenantDomainDao
	jobs     queue.JobStore
	cache    cache.Cache
	notifier notifications.Notifier
	nowFunc  func() time.Time
}

func NewRegistrar(cfg *config.Configuration, verifier Verifier, domainDao dao.TenantDomainDao, jobs queue.JobStore, c cache.Cache, notifier notifications.Notifier) *Registrar {
	return &Registrar{
		platform: cfg.Platform,
		domains:  cfg.Domains,
		plesk:    cfg.Plesk,
		verifier: verifier,
		dao:      domainDao,
		jobs:     jobs,
		cache:    c,
		notifier: notifier,
		nowFunc:  time.Now,
	}
}

// AddCustomDomain registers raw as a custom domain of tenant and queues the
// panel alias for it when auto provisioning is on. A failed enqueue is
// reported in the result, the domain stays registered.
func (r *Registrar) AddCustomDomain(ctx context.Context, tenant models.Tenant, raw string, makePrimary bool) (AddDomainResult, error) {
	logger := zerolog.Ctx(ctx).With().Int64("tenant_id", tenant.ID).Logger()
	domain := domainname.Normalize(raw)
	result := AddDomainResult{}

	if domain == "" {
		return result, &ce.DaoError{Message: "Domain is required", BadValidation: true}
	}

	verification, err := r.verification(ctx, domain, tenant.Slug)
	if err != nil {
		return result, err
	}
	result.Verification = verification
	if !verification.OK {
		result.Hint = Hint(verification, r.verifier.AllowedIPs(ctx), r.platform.BaseDomain, tenant.Slug)
		return result, ErrNotVerified
	}

	taken, err := r.dao.DomainExists(ctx, domain, tenant.ID)
	if err != nil {
		return result, err
	}
	if taken {
		return result, &ce.DaoError{Message: fmt.Sprintf("Domain %s is already registered", domain), Conflict: true}
	}

	verifiedAt := r.nowFunc().UTC()
	created, err := r.dao.AddCustom(ctx, tenant.ID, domain, makePrimary, &verifiedAt)
	if err != nil {
		return result, err
	}
	result.Domain = &created
	logger.Info().Str("domain", domain).Bool("primary", created.IsPrimary).Msg("custom domain added")

	if err := r.cache.ForgetHost(ctx, domain); err != nil {
		logger.Warn().Err(err).Str("domain", domain).Msg("could not drop cached host")
	}

	if r.plesk.AutoProvision {
		outcome, err := r.jobs.EnqueueAliasCreate(ctx, tenant.ID, domain)
		if err != nil {
			logger.Error().Err(err).Str("domain", domain).Msg("could not enqueue domain alias")
			result.EnqueueError = err.Error()
		} else {
			result.ProvisioningEnqueued = true
			result.EnqueueOutcome = string(outcome)
		}
	}

	sent := r.notifier.Notify(ctx, notifications.DomainAdded, notifications.DomainEvent{
		TenantID: tenant.ID,
		Domain:   domain,
	})
	if sent.Err != nil {
		logger.Warn().Err(sent.Err).Str("domain", domain).Msg("domain added notification failed")
	}
	return result, nil
}

// CheckDomain runs verification without storing anything and attaches the hint.
func (r *Registrar) CheckDomain(ctx context.Context, tenant models.Tenant, raw string) (AddDomainResult, error) {
	result := AddDomainResult{}
	verification, err := r.verifier.Verify(ctx, raw, tenant.Slug)
	if err != nil {
		return result, err
	}
	result.Verification = verification
	result.Hint = Hint(verification, r.verifier.AllowedIPs(ctx), r.platform.BaseDomain, tenant.Slug)
	return result, nil
}

// verification checks DNS when it is required. Otherwise only the name
// itself is checked.
func (r *Registrar) verification(ctx context.Context, domain string, tenantSlug string) (VerificationResult, error) {
	if r.domains.VerifyRequired {
		return r.verifier.Verify(ctx, domain, tenantSlug)
	}
	switch {
	case !domainname.IsValid(domain):
		return VerificationResult{Reason: ReasonDomainInvalid, Domain: domain}, nil
	case domainname.IsWithin(domain, domainname.Normalize(r.platform.BaseDomain)):
		return VerificationResult{Reason: ReasonPlatformDomain, Domain: domain}, nil
	}
	return VerificationResult{OK: true, Reason: ReasonNotRequired, Domain: domain}, nil
}
