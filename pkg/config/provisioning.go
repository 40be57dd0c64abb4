package config

const (
	DomainKindSubdomain = "subdomain" // {slug}.{base} domain assigned at registration
	DomainKindCustom    = "custom"    // Tenant owned domain, verified through DNS
	DomainKindPlatform  = "platform"  // The platform's own base domain
)

const ActionAliasCreate = "alias_create" // Add the domain as an alias of the panel site

const (
	JobStatusPending = "pending" // Job is waiting for the next provisioning pass
	JobStatusSuccess = "success" // Alias exists on the panel
	JobStatusFailed  = "failed"  // Last attempt failed, needs an explicit re-enqueue
)

var JobStatuses = []string{JobStatusPending, JobStatusSuccess, JobStatusFailed}

// ProvisionLastRunKey is the system key/value entry holding the last pass marker.
const ProvisionLastRunKey = "plesk_provision_last_run"

const (
	PassMarkerStarted   = "started"
	PassMarkerFinished  = "finished"
	PassMarkerNoPending = "no_pending"
)
