package service

import (
	"context"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

// StateCodeService exposes the GST jurisdiction reference table.
type StateCodeService interface {
	// List returns all state codes, seeding the table first if empty.
	List(ctx context.Context) ([]domain.StateCode, error)
}

type stateCodeService struct {
	repo port.StateCodeRepository
}

// NewStateCodeService creates a new StateCodeService implementation.
func NewStateCodeService(repo port.StateCodeRepository) StateCodeService {
	return &stateCodeService{repo: repo}
}

func (s *stateCodeService) List(ctx context.Context) ([]domain.StateCode, error) {
	if err := s.repo.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return s.repo.LoadAll(ctx)
}
