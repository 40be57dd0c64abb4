package models

import (
	"strings"

	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
)

type Error struct {
	Message    string
	Validation bool
}

func (e Error) Error() string {
	return e.Message
}

// normalizeSlug keeps tenant slugs usable as a DNS label.
func normalizeSlug(slug string) string {
	return domainname.Normalize(strings.Join(strings.Fields(slug), "-"))
}
