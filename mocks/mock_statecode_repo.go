package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tallymap/internal/domain"
)

// MockStateCodeRepo is a mock implementation of port.StateCodeRepository.
type MockStateCodeRepo struct {
	mock.Mock
}

func (m *MockStateCodeRepo) LoadAll(ctx context.Context) ([]domain.StateCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateCode), args.Error(1)
}

func (m *MockStateCodeRepo) EnsureSeeded(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
