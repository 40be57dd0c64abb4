package dns_client

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockDnsClient struct {
	mock.Mock
}

func (m *MockDnsClient) ResolveA(ctx context.Context, domain string) []string {
	args := m.Called(ctx, domain)
	if ips, ok := args.Get(0).([]string); ok {
		return ips
	}
	return []string{}
}

func (m *MockDnsClient) ResolveCNAME(ctx context.Context, domain string) (string, bool) {
	args := m.Called(ctx, domain)
	return args.String(0), args.Bool(1)
}

// NewMockDnsClient creates a new instance of MockDnsClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDnsClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDnsClient {
	m := &MockDnsClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
