package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockVault is a mock implementation of vault.Vault.
type MockVault struct {
	mock.Mock
}

// GetSecret resolves a secret reference.
func (m *MockVault) GetSecret(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

// Ping checks the vault.
func (m *MockVault) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the vault.
func (m *MockVault) Close() error {
	args := m.Called()
	return args.Error(0)
}
