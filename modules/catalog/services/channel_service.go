package services

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/channel"
	"github.com/medinsure/underwriting-admin/pkg/constants"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

type CreateChannelDTO struct {
	Code        string `validate:"required,max=64"`
	Name        string `validate:"required,max=255"`
	Description string
}

type UpdateChannelDTO struct {
	Code        string         `validate:"required,max=64"`
	Name        string         `validate:"required,max=255"`
	Description string
	Status      channel.Status `validate:"required,oneof=enabled disabled"`
}

type ChannelService struct {
	repo      channel.Repository
	publisher eventbus.EventBus
}

func NewChannelService(repo channel.Repository, publisher eventbus.EventBus) *ChannelService {
	return &ChannelService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *ChannelService) Create(ctx context.Context, dto CreateChannelDTO) (*channel.Channel, error) {
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &channel.Channel{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		Status:      channel.StatusEnabled,
	})
	if err != nil {
		return nil, conflictOn(err, "CHANNEL_CODE_TAKEN", "channel code already exists", "catalog.channel.code_taken")
	}
	s.publisher.Publish("channel.created", created)
	return created, nil
}

func (s *ChannelService) GetByID(ctx context.Context, id int64) (*channel.Channel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ChannelService) List(ctx context.Context, limit, offset int) ([]*channel.Channel, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *ChannelService) Update(ctx context.Context, id int64, dto UpdateChannelDTO) (*channel.Channel, error) {
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
	existing.Status = dto.Status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, conflictOn(err, "CHANNEL_CODE_TAKEN", "channel code already exists", "catalog.channel.code_taken")
	}
	s.publisher.Publish("channel.updated", updated)
	return updated, nil
}

func (s *ChannelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("channel.deleted", id)
	return nil
}
