package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tallymap/internal/domain"
)

// MockImportRepo is a mock implementation of port.ImportRepository.
type MockImportRepo struct {
	mock.Mock
}

func (m *MockImportRepo) Create(ctx context.Context, batch *domain.ImportBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockImportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportBatch), args.Error(1)
}

func (m *MockImportRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.ImportBatch, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportBatch), args.Error(1)
}

func (m *MockImportRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.ImportBatch, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportBatch), args.Error(1)
}
