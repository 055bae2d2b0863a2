package services

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/product"
	"github.com/medinsure/underwriting-admin/pkg/constants"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

type CreateProductDTO struct {
	Code      string `validate:"required,max=64"`
	Name      string `validate:"required,max=255"`
	TypeCode  string `validate:"max=64"`
	CompanyID int64  `validate:"required,gt=0"`
	ChannelID *int64
	RuleID    *int64
}

type UpdateProductDTO struct {
	Code      string         `validate:"required,max=64"`
	Name      string         `validate:"required,max=255"`
	TypeCode  string         `validate:"max=64"`
	CompanyID int64          `validate:"required,gt=0"`
	ChannelID *int64
	RuleID    *int64
	Status    product.Status `validate:"required,oneof=enabled disabled"`
}

type ProductService struct {
	repo      product.Repository
	publisher eventbus.EventBus
}

func NewProductService(repo product.Repository, publisher eventbus.EventBus) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *ProductService) Create(ctx context.Context, dto CreateProductDTO) (*product.Product, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &product.Product{
		Code:      dto.Code,
		Name:      dto.Name,
		TypeCode:  dto.TypeCode,
		CompanyID: dto.CompanyID,
		ChannelID: dto.ChannelID,
		RuleID:    dto.RuleID,
		Status:    product.StatusEnabled,
	})
	if err != nil {
		return nil, conflictOn(err, "PRODUCT_CODE_TAKEN", "product code already exists", "catalog.product.code_taken")
	}
	s.publisher.Publish("product.created", created)
	return created, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *ProductService) Update(ctx context.Context, id int64, dto UpdateProductDTO) (*product.Product, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Code = dto.Code
	existing.Name = dto.Name
	existing.TypeCode = dto.TypeCode
	existing.CompanyID = dto.CompanyID
	existing.ChannelID = dto.ChannelID
	existing.RuleID = dto.RuleID
	existing.Status = dto.Status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, conflictOn(err, "PRODUCT_CODE_TAKEN", "product code already exists", "catalog.product.code_taken")
	}
	s.publisher.Publish("product.updated", updated)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("product.deleted", id)
	return nil
}
