package service

import (
	"context"

	"github.com/google/uuid"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

// CompanyInput is the DTO for creating a company master record.
type CompanyInput struct {
	CompanyName string `json:"company_name" binding:"required"`
	MailingName string `json:"mailing_name"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Pincode     string `json:"pincode"`
	Telephone   string `json:"telephone"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	TANNumber   string `json:"tan_number"`
	GSTIN       string `json:"gstin"`
}

// UpdateCompanyInput is the DTO for updating a company; nil fields are left
// unchanged.
type UpdateCompanyInput struct {
	CompanyName *string `json:"company_name"`
	MailingName *string `json:"mailing_name"`
	Address     *string `json:"address"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	Pincode     *string `json:"pincode"`
	Telephone   *string `json:"telephone"`
	Mobile      *string `json:"mobile"`
	Email       *string `json:"email"`
	TANNumber   *string `json:"tan_number"`
	GSTIN       *string `json:"gstin"`
}

// CompanyService defines the company master management contract.
type CompanyService interface {
	Create(ctx context.Context, input CompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyService struct {
	repo port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(repo port.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		CompanyName: input.CompanyName,
		MailingName: input.MailingName,
		Address:     input.Address,
		State:       input.State,
		Country:     input.Country,
		Pincode:     input.Pincode,
		Telephone:   input.Telephone,
		Mobile:      input.Mobile,
		Email:       input.Email,
		TANNumber:   input.TANNumber,
		GSTIN:       input.GSTIN,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.repo.List(ctx)
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&company.CompanyName, input.CompanyName)
	apply(&company.MailingName, input.MailingName)
	apply(&company.Address, input.Address)
	apply(&company.State, input.State)
	apply(&company.Country, input.Country)
	apply(&company.Pincode, input.Pincode)
	apply(&company.Telephone, input.Telephone)
	apply(&company.Mobile, input.Mobile)
	apply(&company.Email, input.Email)
	apply(&company.TANNumber, input.TANNumber)
	apply(&company.GSTIN, input.GSTIN)

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
