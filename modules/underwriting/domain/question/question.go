package question

import (
	"context"
	"time"
)

type Attribute string

const (
	AttributeNormal      Attribute = "normal"
	AttributeClassifying Attribute = "classifying"
)

// Arity is how the question expects to be answered.
type Arity string

const (
	AritySingleSelect Arity = "single_select"
	ArityMultiSelect  Arity = "multi_select"
	ArityFreeText     Arity = "free_text"
)

type Question struct {
	ID        int64
	RuleID    int64
	Code      string
	Content   string
	Attribute Attribute
	Arity     Arity
	Remark    string
	BatchNo   string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, q *Question) (*Question, error)
	// GetByCode resolves a question code within a rule across batches, newest
	// batch first. Used when an import run references a question from a
	// previous version.
	GetByCode(ctx context.Context, ruleID int64, code string) (*Question, error)
	ListByBatch(ctx context.Context, batchNo string) ([]*Question, error)
}

// NotFoundError is returned by GetByCode when no question matches.
type NotFoundError struct {
	RuleID int64
	Code   string
}

func (e *NotFoundError) Error() string {
	return "question not found: " + e.Code
}
