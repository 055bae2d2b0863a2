package services

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/company"
	"github.com/medinsure/underwriting-admin/pkg/constants"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

type CreateCompanyDTO struct {
	Code        string `validate:"required,max=64"`
	Name        string `validate:"required,max=255"`
	Description string
	Contact     string `validate:"max=128"`
	Phone       string `validate:"max=32"`
	Address     string `validate:"max=255"`
	Remark      string
}

type UpdateCompanyDTO struct {
	Code        string         `validate:"required,max=64"`
	Name        string         `validate:"required,max=255"`
	Description string
	Contact     string         `validate:"max=128"`
	Phone       string         `validate:"max=32"`
	Address     string         `validate:"max=255"`
	Remark      string
	Status      company.Status `validate:"required,oneof=enabled disabled"`
}

type CompanyService struct {
	repo      company.Repository
	publisher eventbus.EventBus
}

func NewCompanyService(repo company.Repository, publisher eventbus.EventBus) *CompanyService {
	return &CompanyService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *CompanyService) Create(ctx context.Context, dto CreateCompanyDTO) (*company.Company, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &company.Company{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		Contact:     dto.Contact,
		Phone:       dto.Phone,
		Address:     dto.Address,
		Remark:      dto.Remark,
		Status:      company.StatusEnabled,
	})
	if err != nil {
		return nil, conflictOn(err, "COMPANY_CODE_TAKEN", "company code already exists", "catalog.company.code_taken")
	}
	s.publisher.Publish("company.created", created)
	return created, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]*company.Company, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *CompanyService) Update(ctx context.Context, id int64, dto UpdateCompanyDTO) (*company.Company, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Code = dto.Code
	existing.Name = dto.Name
	existing.Description = dto.Description
	existing.Contact = dto.Contact
	existing.Phone = dto.Phone
	existing.Address = dto.Address
	existing.Remark = dto.Remark
	existing.Status = dto.Status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, conflictOn(err, "COMPANY_CODE_TAKEN", "company code already exists", "catalog.company.code_taken")
	}
	s.publisher.Publish("company.updated", updated)
	return updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("company.deleted", id)
	return nil
}
