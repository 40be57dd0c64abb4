// Package domainname canonicalises the host names tenants type into forms.
package domainname

import (
	"regexp"
	"strings"
	"unicode"
)

// validPattern accepts lower case LDH labels of 1-63 characters, at least one
// dot and an alphabetic top level label.
var validPattern = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// Normalize lower-cases and trims raw, drops an http(s) scheme, anything from
// the first "/" or ":" on, and trailing dots. The empty string normalizes to
// itself, callers reject it separately.
func Normalize(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(d, scheme) {
			d = d[len(scheme):]
			break
		}
	}
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	return strings.TrimRightFunc(strings.TrimSpace(d), func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
}

// IsValid reports whether an already normalized name is a syntactically
// acceptable custom domain.
func IsValid(domain string) bool {
	return validPattern.MatchString(domain)
}

// IsWithin reports whether domain equals base or is one of its subdomains.
// Both are normalized first.
func IsWithin(domain, base string) bool {
	domain = Normalize(domain)
	base = Normalize(base)
	if domain == "" || base == "" {
		return false
	}
	return domain == base || strings.HasSuffix(domain, "."+base)
}

// Equal compares two host names after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// FirstLabel returns the left-most label of domain when it is a direct child
// of base, e.g. "acme" for ("acme.platform.io", "platform.io").
func FirstLabel(domain, base string) (string, bool) {
	domain = Normalize(domain)
	base = Normalize(base)
	if base == "" || !strings.HasSuffix(domain, "."+base) {
		return "", false
	}
	label := strings.TrimSuffix(domain, "."+base)
	if label == "" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}
