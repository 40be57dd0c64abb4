package notifications

type EventName int

const (
	DomainAdded EventName = iota
	DomainAliasProvisioned
	DomainAliasFailed
)

func (d EventName) String() string {
	switch d {
	case DomainAdded:
		return "domain-added"
	case DomainAliasProvisioned:
		return "domain-alias-provisioned"
	case DomainAliasFailed:
		return "domain-alias-failed"
	default:
		return ""
	}
}
