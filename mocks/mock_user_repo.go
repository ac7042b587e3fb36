package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"idsync/internal/domain"
)

// MockUserRepo is a mock implementation of port.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Upsert accepts either a *domain.User or a func(context.Context, *domain.User) *domain.User
// as the first return value.
func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	switch ret := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(context.Context, *domain.User) *domain.User:
		return ret(ctx, user), args.Error(1)
	default:
		return ret.(*domain.User), args.Error(1)
	}
}

func (m *MockUserRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
