package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"idsync/internal/port"
	"idsync/internal/service"
)

// MockUserSyncService is a mock implementation of service.UserSyncService.
type MockUserSyncService struct {
	mock.Mock
}

func (m *MockUserSyncService) Sync(ctx context.Context, claim *port.IdentityClaim) (*service.SyncResult, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}
