package product

import (
	"context"
	"time"
)

type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// Product is an insurance product sold through a channel. RuleID binds the
// underwriting rule whose imported decision tree the product uses; nil means
// no underwriting questions are asked.
type Product struct {
	ID        int64
	Code      string
	Name      string
	TypeCode  string
	CompanyID int64
	ChannelID *int64
	RuleID    *int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
