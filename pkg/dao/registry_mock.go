package dao

import (
	"testing"
)

type MockDaoRegistry struct {
	Tenant          *MockTenantDao
	TenantDomain    *MockTenantDomainDao
	SystemKV        *MockSystemKVDao
	ProvisioningJob *MockProvisioningJobDao
}

func (m *MockDaoRegistry) ToDaoRegistry() *DaoRegistry {
	r := DaoRegistry{
		Tenant:          m.Tenant,
		TenantDomain:    m.TenantDomain,
		SystemKV:        m.SystemKV,
		ProvisioningJob: m.ProvisioningJob,
	}
	return &r
}

func GetMockDaoRegistry(t *testing.T) *MockDaoRegistry {
	reg := MockDaoRegistry{
		Tenant:          NewMockTenantDao(t),
		TenantDomain:    NewMockTenantDomainDao(t),
		SystemKV:        NewMockSystemKVDao(t),
		ProvisioningJob: NewMockProvisioningJobDao(t),
	}
	return &reg
}
