package api

import "time"

// TenantDomainResponse is a host name served for a tenant.
type TenantDomainResponse struct {
	ID         int64      `json:"id"`          // Identifier of the domain
	TenantID   int64      `json:"tenant_id"`   // Tenant owning the domain
	Domain     string     `json:"domain"`      // Normalized host name
	Kind       string     `json:"kind"`        // subdomain, custom or platform
	IsPrimary  bool       `json:"is_primary"`  // Whether links are built with this domain
	Verified   bool       `json:"verified"`    // Whether the domain passed verification
	VerifiedAt *time.Time `json:"verified_at"` // Time the domain was verified
	CreatedAt  time.Time  `json:"created_at"`  // Time the domain was added
}

type TenantDomainCollectionResponse struct {
	Data []TenantDomainResponse `json:"data"` // Domains of the tenant, primary first
}

type AddDomainRequest struct {
	Domain      string `json:"domain" validate:"required,max=253"` // Domain to add, a scheme, path or port is stripped
	MakePrimary bool   `json:"make_primary"`                       // Make this the tenant's primary domain
}

type VerificationDetails struct {
	CNAME       string   `json:"cname,omitempty"`        // CNAME target that matched
	IP          string   `json:"ip,omitempty"`           // A record that matched
	DomainIPs   []string `json:"domain_ips,omitempty"`   // A records of the domain
	ExpectedIPs []string `json:"expected_ips,omitempty"` // Platform addresses the A records were checked against
}

type VerificationResponse struct {
	OK      bool                 `json:"ok"`                // Whether the domain points at the platform
	Reason  string               `json:"reason"`            // Reason code of the outcome
	Domain  string               `json:"domain"`            // Normalized domain that was checked
	Details *VerificationDetails `json:"details,omitempty"` // DNS data behind the outcome
	Hint    string               `json:"hint,omitempty"`    // How to fix a failed verification
}

type AddDomainResponse struct {
	Domain               *TenantDomainResponse `json:"domain,omitempty"`          // Stored domain
	Verification         VerificationResponse  `json:"verification"`              // Verification outcome
	ProvisioningEnqueued bool                  `json:"provisioning_enqueued"`     // Whether a panel alias job is queued
	EnqueueOutcome       string                `json:"enqueue_outcome,omitempty"` // created, requeued, already_pending or already_provisioned
	EnqueueError         string                `json:"enqueue_error,omitempty"`   // Why the alias job could not be queued
}

type VerifyDomainRequest struct {
	Domain string `query:"domain" validate:"required,max=253"` // Domain to check
}
