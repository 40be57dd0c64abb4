package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/arca-digital/complaints-book-backend/pkg/api"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
)

// tenantFromContext returns the tenant ResolveTenant stored for the request.
func tenantFromContext(c echo.Context) (models.Tenant, error) {
	tc, ok := tenancy.FromContext(c.Request().Context())
	if !ok || !tc.Known() {
		return models.Tenant{}, ce.NewErrorResponse(http.StatusNotFound, "Unknown tenant", "No tenant is served on host "+c.Request().Host)
	}
	return tc.Tenant, nil
}

// ParseLimit reads the limit query parameter, falling back to def and never
// exceeding maxLimit.
func ParseLimit(c echo.Context, def int, maxLimit int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, ce.NewErrorResponse(http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
	}
	return min(limit, maxLimit), nil
}

// RedactedURL keeps scheme, host, port and path of a URL. Credentials,
// query and fragment are dropped.
func RedactedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	redacted := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return redacted.String()
}

func tenantDomainResponse(d models.TenantDomain) api.TenantDomainResponse {
	return api.TenantDomainResponse{
		ID:         d.ID,
		TenantID:   d.TenantID,
		Domain:     d.Domain,
		Kind:       d.Kind,
		IsPrimary:  d.IsPrimary,
		Verified:   d.Verified(),
		VerifiedAt: d.VerifiedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func verificationResponse(result domains.VerificationResult, hint string) api.VerificationResponse {
	response := api.VerificationResponse{
		OK:     result.OK,
		Reason: string(result.Reason),
		Domain: result.Domain,
		Hint:   hint,
	}
	if result.Details != nil {
		response.Details = &api.VerificationDetails{
			CNAME:       result.Details.CNAME,
			IP:          result.Details.IP,
			DomainIPs:   result.Details.DomainIPs,
			ExpectedIPs: result.Details.ExpectedIPs,
		}
	}
	return response
}

func provisioningJobResponse(j models.ProvisioningJob) api.ProvisioningJobResponse {
	response := api.ProvisioningJobResponse{
		ID:          j.ID,
		TenantID:    j.TenantID,
		Domain:      j.Domain,
		Action:      j.Action,
		Status:      j.Status,
		Attempts:    j.Attempts,
		CreatedAt:   j.CreatedAt,
		ProcessedAt: j.ProcessedAt,
	}
	if j.LastError != nil {
		response.LastError = *j.LastError
	}
	return response
}
