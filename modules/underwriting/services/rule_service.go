package services

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
	"github.com/medinsure/underwriting-admin/pkg/constants"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

type CreateRuleDTO struct {
	Name        string `validate:"required,max=255"`
	Version     string `validate:"max=64"`
	Description string
}

type UpdateRuleDTO struct {
	Name        string      `validate:"required,max=255"`
	Version     string      `validate:"max=64"`
	Description string
	Status      rule.Status `validate:"required,oneof=draft enabled disabled imported"`
}

type RuleService struct {
	repo      rule.Repository
	diseases  disease.Repository
	publisher eventbus.EventBus
}

func NewRuleService(repo rule.Repository, diseases disease.Repository, publisher eventbus.EventBus) *RuleService {
	return &RuleService{
		repo:      repo,
		diseases:  diseases,
		publisher: publisher,
	}
}

func (s *RuleService) Create(ctx context.Context, dto CreateRuleDTO) (*rule.UnderwritingRule, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &rule.UnderwritingRule{
		Name:        dto.Name,
		Version:     dto.Version,
		Description: dto.Description,
		Status:      rule.StatusDraft,
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("rule.created", created)
	return created, nil
}

func (s *RuleService) GetByID(ctx context.Context, id int64) (*rule.UnderwritingRule, error) {
	return s.repo.GetByID(ctx, id)
}

// HasImportedData reports whether any import run has landed diseases for the
// rule, across all of its batch versions.
func (s *RuleService) HasImportedData(ctx context.Context, id int64) (bool, error) {
	count, err := s.diseases.CountByRule(ctx, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RuleService) List(ctx context.Context, limit, offset int) ([]*rule.UnderwritingRule, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *RuleService) Update(ctx context.Context, id int64, dto UpdateRuleDTO) (*rule.UnderwritingRule, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = dto.Name
	existing.Version = dto.Version
	existing.Description = dto.Description
	existing.Status = dto.Status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("rule.updated", updated)
	return updated, nil
}

func (s *RuleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("rule.deleted", id)
	return nil
}
