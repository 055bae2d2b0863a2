package importbatch

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type RowStatus string

const (
	RowSuccess RowStatus = "success"
	RowError   RowStatus = "error"
)

type DataType string

const (
	DataTypeDisease  DataType = "disease"
	DataTypeQuestion DataType = "question"
	DataTypeAnswer   DataType = "answer"
)

// Batch records one execution of the import engine against one workbook.
// It is created pending, moves to processing once the workbook is readable,
// and is finalized to completed or failed exactly once. Row-level errors do
// not fail a batch; only structural or unexpected failures do.
type Batch struct {
	ID             int64
	BatchNo        string
	ImportType     string
	SourceFileName string
	Status         Status
	TotalCount     int
	SuccessCount   int
	ErrorCount     int
	ErrorSummary   *string
	CreatedBy      *int64
	CreatedAt      time.Time
}

// RowResult is one immutable audit record per input row. RawRow snapshots the
// original column to value mapping for debugging; it is never interpreted.
type RowResult struct {
	ID           int64
	BatchID      int64
	SheetName    string
	RowNumber    int
	Status       RowStatus
	DataType     DataType
	ReferenceID  *int64
	ErrorMessage *string
	RawRow       map[string]string
	CreatedAt    time.Time
}

type Repository interface {
	CreateBatch(ctx context.Context, b *Batch) (*Batch, error)
	UpdateBatch(ctx context.Context, b *Batch) (*Batch, error)
	GetBatchByNo(ctx context.Context, batchNo string) (*Batch, error)
	ListBatches(ctx context.Context, limit, offset int) ([]*Batch, error)
	AddRowResult(ctx context.Context, r *RowResult) (*RowResult, error)
	ListRowResults(ctx context.Context, batchID int64) ([]*RowResult, error)
}
