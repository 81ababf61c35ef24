package mocks

import (
	"context"

	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/ma6uchi/freee-api-export/internal/domain/workload"
	"github.com/stretchr/testify/mock"
)

// CredentialStore is a mock for repository.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) Get(ctx context.Context, scope string) (credential.Credential, error) {
	args := m.Called(ctx, scope)
	if cred, ok := args.Get(0).(credential.Credential); ok {
		return cred, args.Error(1)
	}
	return credential.Credential{}, args.Error(1)
}

func (m *CredentialStore) Put(ctx context.Context, scope string, cred credential.Credential) error {
	args := m.Called(ctx, scope, cred)
	return args.Error(0)
}

// Refresher is a mock for credential.Refresher.
type Refresher struct {
	mock.Mock
}

func (m *Refresher) Refresh(ctx context.Context, refreshToken string) (credential.Credential, error) {
	args := m.Called(ctx, refreshToken)
	if cred, ok := args.Get(0).(credential.Credential); ok {
		return cred, args.Error(1)
	}
	return credential.Credential{}, args.Error(1)
}

// APIClient is a mock for export.APIClient.
type APIClient struct {
	mock.Mock
}

func (m *APIClient) FetchProjects(ctx context.Context, companyID int64) ([]project.Project, error) {
	args := m.Called(ctx, companyID)
	if projects, ok := args.Get(0).([]project.Project); ok {
		return projects, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *APIClient) FetchWorkloads(ctx context.Context, companyID int64, yearMonth, employeesScope string) ([]workload.Entry, error) {
	args := m.Called(ctx, companyID, yearMonth, employeesScope)
	if entries, ok := args.Get(0).([]workload.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// Sink is a mock for sink.Sink.
type Sink struct {
	mock.Mock
}

func (m *Sink) Store(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

// CredentialSource is a mock for export.CredentialSource.
type CredentialSource struct {
	mock.Mock
}

func (m *CredentialSource) EnsureValid(ctx context.Context) (credential.Credential, error) {
	args := m.Called(ctx)
	if cred, ok := args.Get(0).(credential.Credential); ok {
		return cred, args.Error(1)
	}
	return credential.Credential{}, args.Error(1)
}
