package channel

import (
	"context"
	"time"
)

type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// Channel is a sales channel underwriting rules are published to.
type Channel struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, c *Channel) (*Channel, error)
	GetByID(ctx context.Context, id int64) (*Channel, error)
	List(ctx context.Context, limit, offset int) ([]*Channel, error)
	Update(ctx context.Context, c *Channel) (*Channel, error)
	Delete(ctx context.Context, id int64) error
}
