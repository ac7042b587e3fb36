package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"idsync/internal/port"
)

// MockIdentityProvider is a mock implementation of port.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) FetchIdentity(ctx context.Context, token string) (*port.IdentityClaim, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.IdentityClaim), args.Error(1)
}

func (m *MockIdentityProvider) Provider() string {
	args := m.Called()
	return args.String(0)
}
