package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"idsync/internal/port"
)

// MockHTTPGateway is a mock implementation of port.HTTPGateway.
type MockHTTPGateway struct {
	mock.Mock
}

func (m *MockHTTPGateway) Do(ctx context.Context, req port.HTTPRequest) (*port.HTTPResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.HTTPResponse), args.Error(1)
}
