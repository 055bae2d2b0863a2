package services

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/channel"
	"github.com/medinsure/underwriting-admin/pkg/serrors"
)

type stubPublisher struct {
	events []string
}

func (p *stubPublisher) Publish(args ...interface{}) {
	if len(args) > 0 {
		if name, ok := args[0].(string); ok {
			p.events = append(p.events, name)
		}
	}
}
func (p *stubPublisher) Subscribe(handler interface{})   {}
func (p *stubPublisher) Unsubscribe(handler interface{}) {}
func (p *stubPublisher) Clear()                          {}
func (p *stubPublisher) SubscribersCount() int           { return 0 }

type fakeChannelRepo struct {
	seq       int64
	items     []*channel.Channel
	createErr error
}

func (f *fakeChannelRepo) Create(_ context.Context, c *channel.Channel) (*channel.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	stored := *c
	stored.ID = f.seq
	f.items = append(f.items, &stored)
	out := stored
	return &out, nil
}

func (f *fakeChannelRepo) GetByID(_ context.Context, id int64) (*channel.Channel, error) {
	for _, c := range f.items {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, channelNotFound
}

func (f *fakeChannelRepo) List(_ context.Context, limit, offset int) ([]*channel.Channel, error) {
	return f.items, nil
}

func (f *fakeChannelRepo) Update(_ context.Context, c *channel.Channel) (*channel.Channel, error) {
	for i, existing := range f.items {
		if existing.ID == c.ID {
			stored := *c
			f.items[i] = &stored
			out := stored
			return &out, nil
		}
	}
	return nil, channelNotFound
}

func (f *fakeChannelRepo) Delete(_ context.Context, id int64) error {
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return channelNotFound
}

var channelNotFound = assert.AnError

func TestChannelService_Create(t *testing.T) {
	repo := &fakeChannelRepo{}
	bus := &stubPublisher{}
	svc := NewChannelService(repo, bus)

	created, err := svc.Create(context.Background(), CreateChannelDTO{
		Code: "AGENT",
		Name: "代理人渠道",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, channel.StatusEnabled, created.Status)
	assert.Equal(t, []string{"channel.created"}, bus.events)
}

func TestChannelService_Create_ValidationFailed(t *testing.T) {
	svc := NewChannelService(&fakeChannelRepo{}, &stubPublisher{})

	_, err := svc.Create(context.Background(), CreateChannelDTO{Name: "missing code"})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "Code", validationErrs[0].Field())
}

func TestChannelService_Create_DuplicateCode(t *testing.T) {
	repo := &fakeChannelRepo{
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "channels_code_key"},
	}
	svc := NewChannelService(repo, &stubPublisher{})

	_, err := svc.Create(context.Background(), CreateChannelDTO{Code: "AGENT", Name: "代理人渠道"})
	require.Error(t, err)

	var base *serrors.BaseError
	require.ErrorAs(t, err, &base)
	assert.Equal(t, "CHANNEL_CODE_TAKEN", base.Code)
}

func TestChannelService_Update(t *testing.T) {
	repo := &fakeChannelRepo{}
	bus := &stubPublisher{}
	svc := NewChannelService(repo, bus)

	created, err := svc.Create(context.Background(), CreateChannelDTO{Code: "AGENT", Name: "代理人渠道"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateChannelDTO{
		Code:   "AGENT",
		Name:   "代理人渠道（停用）",
		Status: channel.StatusDisabled,
	})
	require.NoError(t, err)
	assert.Equal(t, channel.StatusDisabled, updated.Status)
	assert.Equal(t, []string{"channel.created", "channel.updated"}, bus.events)
}
