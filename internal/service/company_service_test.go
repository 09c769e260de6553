package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tallymap/internal/domain"
	"tallymap/internal/service"
	"tallymap/mocks"
)

func TestCompanyService_Create(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	company, err := svc.Create(context.Background(), service.CompanyInput{
		CompanyName: "Acme Pvt Ltd",
		State:       "Maharashtra",
		GSTIN:       "27ZZZZZ9999Z1Z5",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Pvt Ltd", company.CompanyName)
	assert.Equal(t, "27ZZZZZ9999Z1Z5", company.GSTIN)
	repo.AssertExpectations(t)
}

func TestCompanyService_Update_MergesOnlyProvidedFields(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	id := uuid.New()
	existing := &domain.Company{
		ID:          id,
		CompanyName: "Acme Pvt Ltd",
		State:       "Maharashtra",
		Email:       "accounts@acme.in",
	}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	newName := "Acme Industries Pvt Ltd"
	company, err := svc.Update(context.Background(), id, service.UpdateCompanyInput{
		CompanyName: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Industries Pvt Ltd", company.CompanyName)
	assert.Equal(t, "Maharashtra", company.State)
	assert.Equal(t, "accounts@acme.in", company.Email)
}

func TestCompanyService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	company, err := svc.Update(context.Background(), id, service.UpdateCompanyInput{})

	assert.Nil(t, company)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompanyService_Delete(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestStateCodeService_List_SeedsFirst(t *testing.T) {
	repo := new(mocks.MockStateCodeRepo)
	svc := service.NewStateCodeService(repo)

	repo.On("EnsureSeeded", mock.Anything).Return(nil)
	repo.On("LoadAll", mock.Anything).Return(stateCodes(), nil)

	codes, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, codes, 2)
	repo.AssertExpectations(t)
}
