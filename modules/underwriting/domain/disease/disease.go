package disease

import (
	"context"
	"time"
)

// Disease is the entry point of an imported decision tree. Category code and
// name are denormalized from the source sheet, not resolved at import time.
type Disease struct {
	ID                int64
	RuleID            int64
	Code              string
	Name              string
	CategoryCode      string
	CategoryName      string
	FirstQuestionCode string
	RiskLevel         string
	IsCommon          bool
	Description       string
	BatchNo           string
	CreatedAt         time.Time
}

type Repository interface {
	Create(ctx context.Context, d *Disease) (*Disease, error)
	CountByRule(ctx context.Context, ruleID int64) (int64, error)
	ListByBatch(ctx context.Context, batchNo string) ([]*Disease, error)
}
