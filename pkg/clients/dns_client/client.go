package dns_client

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/miekg/dns"
	"github.com/rs/zerolog"
)

const resolvConf = "/etc/resolv.conf"

var errNoNameservers = errors.New("no nameservers configured")

// DnsClient answers the two questions domain verification asks. Lookups never
// fail loudly: any resolution problem yields an empty answer.
type DnsClient interface {
	ResolveA(ctx context.Context, domain string) []string
	ResolveCNAME(ctx context.Context, domain string) (string, bool)
}

type dnsClientImpl struct {
	client   *dns.Client
	servers  []string
	timeout  time.Duration
	fallback *net.Resolver
}

// NewDnsClient queries cfg.Nameservers, or the servers from resolv.conf when
// none are configured. When no server answers the system resolver is used.
func NewDnsClient(cfg config.Domains) DnsClient {
	timeout := cfg.DNSTimeout
	if timeout <= 0 {
		timeout = config.DefaultDNSTimeout
	}
	servers := nameservers(cfg.Nameservers)
	if len(servers) == 0 {
		if rc, err := dns.ClientConfigFromFile(resolvConf); err == nil {
			for _, s := range rc.Servers {
				servers = append(servers, net.JoinHostPort(s, rc.Port))
			}
		}
	}
	return &dnsClientImpl{
		client:   &dns.Client{Net: "udp", Timeout: timeout},
		servers:  servers,
		timeout:  timeout,
		fallback: net.DefaultResolver,
	}
}

func nameservers(configured []string) []string {
	var servers []string
	for _, s := range configured {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, "53")
		}
		servers = append(servers, s)
	}
	return servers
}

func (c *dnsClientImpl) ResolveA(ctx context.Context, domain string) []string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.exchange(ctx, domain, dns.TypeA)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("domain", domain).Msg("A query failed, using system resolver")
		ips, err := c.fallback.LookupIP(ctx, "ip4", domain)
		if err != nil {
			return []string{}
		}
		addrs := make([]string, 0, len(ips))
		for _, ip := range ips {
			addrs = append(addrs, ip.String())
		}
		return unique(addrs)
	}

	addrs := []string{}
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}
	return unique(addrs)
}

func (c *dnsClientImpl) ResolveCNAME(ctx context.Context, domain string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.exchange(ctx, domain, dns.TypeCNAME)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("domain", domain).Msg("CNAME query failed, using system resolver")
		target, err := c.fallback.LookupCNAME(ctx, domain)
		if err != nil {
			return "", false
		}
		target = strings.TrimSuffix(target, ".")
		// the system resolver answers with the name itself when there is no alias
		if target == "" || strings.EqualFold(target, strings.TrimSuffix(domain, ".")) {
			return "", false
		}
		return target, true
	}

	for _, rr := range resp.Answer {
		if cname, ok := rr.(*dns.CNAME); ok {
			target := strings.TrimSuffix(cname.Target, ".")
			if target != "" {
				return target, true
			}
		}
	}
	return "", false
}

// exchange asks each server in turn and returns the first authoritative
// answer, NXDOMAIN included.
func (c *dnsClientImpl) exchange(ctx context.Context, domain string, qtype uint16) (*dns.Msg, error) {
	if len(c.servers) == 0 {
		return nil, errNoNameservers
	}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range c.servers {
		resp, _, err := c.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if resp.Rcode == dns.RcodeSuccess || resp.Rcode == dns.RcodeNameError {
			return resp, nil
		}
		lastErr = errors.New(dns.RcodeToString[resp.Rcode])
	}
	return nil, lastErr
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
