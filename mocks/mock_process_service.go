package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tallymap/internal/domain"
	"tallymap/internal/service"
)

// MockProcessService is a mock implementation of service.ProcessService.
type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) Process(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedFile), args.Error(1)
}

func (m *MockProcessService) GetProcessed(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedFile), args.Error(1)
}

func (m *MockProcessService) ProcessAll(ctx context.Context) (*service.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SweepResult), args.Error(1)
}
