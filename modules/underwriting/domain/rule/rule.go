package rule

import (
	"context"
	"time"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
	StatusImported Status = "imported"
)

// UnderwritingRule owns one imported decision tree. Disease, question and
// conclusion codes are unique within a rule and batch, never globally.
type UnderwritingRule struct {
	ID          int64
	Name        string
	Version     string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, r *UnderwritingRule) (*UnderwritingRule, error)
	GetByID(ctx context.Context, id int64) (*UnderwritingRule, error)
	List(ctx context.Context, limit, offset int) ([]*UnderwritingRule, error)
	Update(ctx context.Context, r *UnderwritingRule) (*UnderwritingRule, error)
	Delete(ctx context.Context, id int64) error
}
