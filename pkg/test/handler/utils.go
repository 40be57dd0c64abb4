package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/stretchr/testify/mock"
)

const (
	MockHost          = "reclamos.acme.pe"
	MockOperatorToken = "operator-s3cret"
)

var MockTenant = models.Tenant{ID: 42, Slug: "acme", Name: "Acme SAC"}

// MockTenantContext is what a resolver returns for MockHost.
var MockTenantContext = tenancy.TenantContext{
	Tenant: MockTenant,
	Host:   MockHost,
	Source: tenancy.SourceDomain,
}

// ExpectMockTenant makes resolver answer MockTenant for MockHost.
func ExpectMockTenant(resolver *tenancy.MockResolver) {
	resolver.On("Resolve", mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil }), MockHost).Return(MockTenantContext, nil)
}

// NewTenantRequest builds a request addressed to MockHost.
func NewTenantRequest(method string, path string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Host = MockHost
	return req
}

// NewOperatorRequest builds a request carrying MockOperatorToken.
func NewOperatorRequest(method string, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Operator-Token", MockOperatorToken)
	return req
}
