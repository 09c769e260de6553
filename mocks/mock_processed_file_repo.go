package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tallymap/internal/domain"
)

// MockProcessedFileRepo is a mock implementation of port.ProcessedFileRepository.
type MockProcessedFileRepo struct {
	mock.Mock
}

func (m *MockProcessedFileRepo) Upsert(ctx context.Context, file *domain.ProcessedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockProcessedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProcessedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedFile), args.Error(1)
}
