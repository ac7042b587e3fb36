package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"idsync/internal/service"
)

// MockAuthenticationService is a mock implementation of service.AuthenticationService.
type MockAuthenticationService struct {
	mock.Mock
}

func (m *MockAuthenticationService) Authenticate(ctx context.Context, rawHeader string) service.Outcome {
	args := m.Called(ctx, rawHeader)
	return args.Get(0).(service.Outcome)
}
