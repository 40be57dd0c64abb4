package plesk_client

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPleskClient struct {
	mock.Mock
}

func (m *MockPleskClient) CreateDomainAlias(ctx context.Context, siteName string, aliasDomain string) Result {
	args := m.Called(ctx, siteName, aliasDomain)
	if fn, ok := args.Get(0).(func(context.Context, string, string) Result); ok {
		return fn(ctx, siteName, aliasDomain)
	}
	return args.Get(0).(Result)
}

func (m *MockPleskClient) Ping(ctx context.Context) Result {
	args := m.Called(ctx)
	return args.Get(0).(Result)
}

// NewMockPleskClient creates a new instance of MockPleskClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPleskClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPleskClient {
	m := &MockPleskClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
