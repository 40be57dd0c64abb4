package plesk_client

import (
	"context"
	"crypto/tls"
	"errors"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Result is the outcome of one panel request. Panel and transport failures
// are values here, not Go errors.
type Result struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
	// DetailSource tells which parser produced Error: regex, xpath or summary.
	DetailSource DetailSource `json:"detail_source,omitempty"`
	// NetworkError is set when no HTTP response was received at all.
	NetworkError bool `json:"network_error,omitempty"`
}

type PleskClient interface {
	CreateDomainAlias(ctx context.Context, siteName string, aliasDomain string) Result
	Ping(ctx context.Context) Result
}

type pleskClientImpl struct {
	client *resty.Client
	cfg    config.Plesk
}

var errArgumentsRequired = errors.New("site name and alias domain are required")

func NewPleskClient(cfg config.Plesk) PleskClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultPleskTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "text/xml").
		// newer panels read X-API-Key, the legacy XML API reads KEY
		SetHeader("X-API-Key", cfg.APIKey).
		SetHeader("KEY", cfg.APIKey)
	if !cfg.VerifyTLS {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}
	return &pleskClientImpl{client: client, cfg: cfg}
}

// CreateDomainAlias adds aliasDomain as an alias of the panel site siteName.
func (p *pleskClientImpl) CreateDomainAlias(ctx context.Context, siteName string, aliasDomain string) Result {
	siteName = domainname.Normalize(siteName)
	aliasDomain = domainname.Normalize(aliasDomain)
	if siteName == "" || aliasDomain == "" {
		return Result{Error: errArgumentsRequired.Error()}
	}
	packet, err := siteAliasAddPacket(siteName, aliasDomain)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return p.post(ctx, packet)
}

// Ping asks the panel for its general server info with the same credentials
// alias creation uses.
func (p *pleskClientImpl) Ping(ctx context.Context) Result {
	packet, err := serverInfoPacket()
	if err != nil {
		return Result{Error: err.Error()}
	}
	return p.post(ctx, packet)
}

func (p *pleskClientImpl) post(ctx context.Context, packet []byte) Result {
	if p.cfg.URL == "" || p.cfg.APIKey == "" {
		var missing []string
		if p.cfg.URL == "" {
			missing = append(missing, "plesk.url")
		}
		if p.cfg.APIKey == "" {
			missing = append(missing, "plesk.api_key")
		}
		return Result{Error: ce.NewConfigIncompleteError(missing...).Error()}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(packet).
		Post(p.cfg.URL)
	if err != nil {
		result := Result{Error: err.Error()}
		if resp != nil && resp.RawResponse != nil {
			result.Status = resp.StatusCode()
		} else {
			result.NetworkError = true
		}
		zerolog.Ctx(ctx).Warn().Err(err).Int("status", result.Status).Msg("panel request failed")
		return result
	}

	body := resp.String()
	result := Result{Status: resp.StatusCode(), Body: body}
	if looksOk(body) {
		result.OK = true
		return result
	}
	detail := extractFailure(body)
	result.DetailSource = detail.Source
	if detail.Text == "" {
		result.Error = "plesk_error"
	} else {
		result.Error = "plesk_error: " + detail.Text
	}
	return result
}
