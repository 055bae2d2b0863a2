package company

import (
	"context"
	"time"
)

type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

type Company struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Contact     string
	Phone       string
	Address     string
	Remark      string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, c *Company) (*Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context, limit, offset int) ([]*Company, error)
	Update(ctx context.Context, c *Company) (*Company, error)
	Delete(ctx context.Context, id int64) error
}
