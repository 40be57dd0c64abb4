package domains

import (
	"context"
	"fmt"
	"strings"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/dns_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/rs/zerolog"
)

type Reason string

const (
	ReasonDomainRequired   Reason = "domain_required"
	ReasonDomainInvalid    Reason = "domain_invalid"
	ReasonPlatformDomain   Reason = "domain_is_platform_domain"
	ReasonNoDNSRecords     Reason = "no_dns_records"
	ReasonPlatformIPsEmpty Reason = "platform_ips_unknown"
	ReasonAMismatch        Reason = "a_mismatch"
	ReasonCNAMEOk          Reason = "cname_ok"
	ReasonAOk              Reason = "a_ok"
	// ReasonNotRequired marks domains accepted while verification is switched off.
	ReasonNotRequired Reason = "verification_disabled"
)

type Details struct {
	CNAME       string   `json:"cname,omitempty"`
	IP          string   `json:"ip,omitempty"`
	DomainIPs   []string `json:"domain_ips,omitempty"`
	ExpectedIPs []string `json:"expected_ips,omitempty"`
}

type VerificationResult struct {
	OK      bool     `json:"ok"`
	Reason  Reason   `json:"reason"`
	Domain  string   `json:"domain"`
	Details *Details `json:"details,omitempty"`
}

//go:generate $GO_OUTPUT/mockery  --name Verifier --filename verifier_mock.go --inpackage

// Verifier checks that a custom domain points at the platform, either with a
// CNAME to the tenant or base domain or with an A record on a platform IP.
type Verifier interface {
	Verify(ctx context.Context, rawDomain string, tenantSlug string) (VerificationResult, error)
	// AllowedIPs is the platform IP allow-list a domain's A records are checked against.
	AllowedIPs(ctx context.Context) []string
}

type verifierImpl struct {
	platform config.Platform
	dns      dns_client.DnsClient
	metrics  *instrumentation.Metrics
}

func NewVerifier(platform config.Platform, dns dns_client.DnsClient, metrics *instrumentation.Metrics) Verifier {
	return &verifierImpl{
		platform: platform,
		dns:      dns,
		metrics:  metrics,
	}
}

// Verify returns an error only when the platform itself is misconfigured;
// every domain related failure is reported through the result.
func (v *verifierImpl) Verify(ctx context.Context, rawDomain string, tenantSlug string) (VerificationResult, error) {
	domain := domainname.Normalize(rawDomain)
	result, err := v.verify(ctx, domain, tenantSlug)
	if err != nil {
		return result, err
	}
	v.metrics.RecordVerification(string(result.Reason))
	zerolog.Ctx(ctx).Debug().Str("domain", domain).Bool("ok", result.OK).Msgf("domain verification: %s", result.Reason)
	return result, nil
}

func (v *verifierImpl) verify(ctx context.Context, domain string, tenantSlug string) (VerificationResult, error) {
	fail := func(reason Reason, details *Details) (VerificationResult, error) {
		return VerificationResult{OK: false, Reason: reason, Domain: domain, Details: details}, nil
	}

	if domain == "" {
		return fail(ReasonDomainRequired, nil)
	}
	if !domainname.IsValid(domain) {
		return fail(ReasonDomainInvalid, nil)
	}
	if err := v.platform.Validate(); err != nil {
		return VerificationResult{Domain: domain}, err
	}
	base := domainname.Normalize(v.platform.BaseDomain)
	if domainname.IsWithin(domain, base) {
		return fail(ReasonPlatformDomain, nil)
	}

	// A CNAME that points elsewhere is not conclusive, the A records still get checked.
	if cname, ok := v.dns.ResolveCNAME(ctx, domain); ok {
		target := domainname.Normalize(cname)
		for _, allowed := range CNAMETargets(base, tenantSlug) {
			if target == allowed {
				return VerificationResult{OK: true, Reason: ReasonCNAMEOk, Domain: domain, Details: &Details{CNAME: target}}, nil
			}
		}
	}

	domainIPs := v.dns.ResolveA(ctx, domain)
	if len(domainIPs) == 0 {
		return fail(ReasonNoDNSRecords, nil)
	}

	return matchAllowedIPs(domain, domainIPs, v.AllowedIPs(ctx)), nil
}

func matchAllowedIPs(domain string, domainIPs []string, allowed []string) VerificationResult {
	if len(allowed) == 0 {
		return VerificationResult{Reason: ReasonPlatformIPsEmpty, Domain: domain, Details: &Details{DomainIPs: domainIPs}}
	}
	for _, ip := range domainIPs {
		for _, a := range allowed {
			if ip == a {
				return VerificationResult{OK: true, Reason: ReasonAOk, Domain: domain, Details: &Details{IP: ip}}
			}
		}
	}
	return VerificationResult{Reason: ReasonAMismatch, Domain: domain, Details: &Details{DomainIPs: domainIPs, ExpectedIPs: allowed}}
}

// AllowedIPs prefers the configured allow-list. Without one the base domain's
// own A records plus the default platform IP are used, so the derived list is
// never empty.
func (v *verifierImpl) AllowedIPs(ctx context.Context) []string {
	if configured := v.platform.AllowedIPList(); len(configured) > 0 {
		return configured
	}
	var ips []string
	if base := domainname.Normalize(v.platform.BaseDomain); base != "" {
		ips = append(ips, v.dns.ResolveA(ctx, base)...)
	}
	defaultIP := strings.TrimSpace(v.platform.DefaultIP)
	if defaultIP == "" {
		defaultIP = config.DefaultPlatformIP
	}
	return dedupe(append(ips, defaultIP))
}

// CNAMETargets lists the names a custom domain may alias: the tenant's
// platform subdomain and the base domain.
func CNAMETargets(baseDomain string, tenantSlug string) []string {
	base := domainname.Normalize(baseDomain)
	if base == "" {
		return nil
	}
	var targets []string
	if slug := domainname.Normalize(tenantSlug); slug != "" {
		targets = append(targets, slug+"."+base)
	}
	return append(targets, base)
}

// Hint tells a tenant administrator how to fix a failed verification.
func Hint(result VerificationResult, allowedIPs []string, baseDomain string, tenantSlug string) string {
	if result.OK {
		return ""
	}
	switch result.Reason {
	case ReasonDomainRequired:
		return "Enter the domain you want to use."
	case ReasonDomainInvalid:
		return "Enter a domain name such as complaints.example.com, without spaces or paths."
	case ReasonPlatformDomain:
		return "Domains of the platform itself cannot be added as custom domains."
	}

	hint := fmt.Sprintf("Domain not verified (%s).", result.Reason)
	ip := config.DefaultPlatformIP
	if len(allowedIPs) > 0 {
		ip = allowedIPs[0]
	}
	hint += " Point an A record to " + ip
	if targets := CNAMETargets(baseDomain, tenantSlug); len(targets) > 0 {
		hint += " or a CNAME to " + targets[0]
	}
	return hint + "."
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
