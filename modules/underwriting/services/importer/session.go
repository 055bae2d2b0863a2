package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
	"github.com/medinsure/underwriting-admin/pkg/metrics"
)

const ImportTypeUnderwriting = "underwriting"

// Store bundles the persistence collaborators the engine writes through.
type Store struct {
	Batches     importbatch.Repository
	Diseases    disease.Repository
	Questions   question.Repository
	Conclusions conclusion.Repository
}

// TxRunner abstracts transaction boundaries. InTx wraps the whole stage
// sequence; Nested isolates a single row's staging so a constraint violation
// rolls back that row only.
type TxRunner interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
	Nested(ctx context.Context, fn func(context.Context) error) error
}

// PgTxRunner runs on the pgx pool/transaction carried by the context.
type PgTxRunner struct{}

func (PgTxRunner) InTx(ctx context.Context, fn func(context.Context) error) error {
	return composables.InTx(ctx, fn)
}

func (PgTxRunner) Nested(ctx context.Context, fn func(context.Context) error) error {
	return composables.InNestedTx(ctx, fn)
}

// Source is the uploaded workbook staged on disk plus its original name.
type Source struct {
	Path     string
	FileName string
}

// Completed is published on the event bus after every finalized run.
type Completed struct {
	BatchNo string
	RuleID  int64
	Status  importbatch.Status
}

// Report is what the caller renders: the finalized batch plus warnings from
// the post-import graph pass.
type Report struct {
	Batch    *importbatch.Batch
	Warnings []string
}

type Option func(*Importer)

func WithTxRunner(tx TxRunner) Option {
	return func(i *Importer) { i.tx = tx }
}

func WithEventBus(bus eventbus.EventBus) Option {
	return func(i *Importer) { i.bus = bus }
}

// WithMaxRows bounds the total data-row count of one run; exceeding it fails
// closed with a structural error before any row is staged.
func WithMaxRows(n int) Option {
	return func(i *Importer) { i.maxRows = n }
}

func WithSheets(specs []SheetSpec) Option {
	return func(i *Importer) { i.sheets = specs }
}

func WithClock(now func() time.Time) Option {
	return func(i *Importer) { i.now = now }
}

// Importer turns a rule workbook into validated, cross-referenced, persisted
// records with a per-row audit trail. One Run call is one batch; runs are
// synchronous and single-writer.
type Importer struct {
	store   Store
	tx      TxRunner
	bus     eventbus.EventBus
	maxRows int
	sheets  []SheetSpec
	now     func() time.Time
}

func New(store Store, opts ...Option) *Importer {
	i := &Importer{
		store:  store,
		tx:     PgTxRunner{},
		sheets: TemplateSheets(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GenerateBatchNo derives a batch number from the wall clock plus a random
// suffix. Uniqueness is probabilistic but collision-safe at realistic rates;
// the unique constraint on batch_no is the backstop.
func GenerateBatchNo(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "IMP" + now.Format("20060102150405") + suffix
}

// Run executes one import. The returned report always carries a finalized
// batch, never one left pending or processing. The error is non-nil only for
// batch-fatal failures; row-level errors are reflected in the counters.
func (i *Importer) Run(ctx context.Context, ruleID int64, src Source) (*Report, error) {
	batchNo := GenerateBatchNo(i.now())
	log := composables.MustUseLogger(ctx).WithFields(logrus.Fields{
		"batch_no": batchNo,
		"rule_id":  ruleID,
	})
	started := i.now()

	var createdBy *int64
	if actor, err := composables.UseActor(ctx); err == nil {
		id := actor.ID
		createdBy = &id
	}

	batch := &importbatch.Batch{
		BatchNo:        batchNo,
		ImportType:     ImportTypeUnderwriting,
		SourceFileName: src.FileName,
		Status:         importbatch.StatusPending,
		CreatedBy:      createdBy,
	}
	if err := i.tx.InTx(ctx, func(txCtx context.Context) error {
		created, err := i.store.Batches.CreateBatch(txCtx, batch)
		if err != nil {
			return err
		}
		batch = created
		return nil
	}); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}
	log.Info("import batch created")

	wb, err := Open(src.Path)
	if err != nil {
		return i.fail(ctx, log, batch, ruleID, started, err)
	}
	defer func() {
		_ = wb.Close()
	}()

	batch.Status = importbatch.StatusProcessing
	if err := i.updateBatch(ctx, batch); err != nil {
		return i.fail(ctx, log, batch, ruleID, started, fmt.Errorf("mark import batch processing: %w", err))
	}

	if err := ValidateSchema(wb, i.sheets); err != nil {
		return i.fail(ctx, log, batch, ruleID, started, err)
	}

	sheetRows := make(map[string][]Row, len(i.sheets))
	total := 0
	for _, spec := range i.sheets {
		rows, err := wb.Rows(spec)
		if err != nil {
			return i.fail(ctx, log, batch, ruleID, started, err)
		}
		sheetRows[spec.Name] = rows
		total += len(rows)
	}
	if i.maxRows > 0 && total > i.maxRows {
		return i.fail(ctx, log, batch, ruleID, started, NewStructuralError(
			fmt.Sprintf("workbook exceeds the %d row import bound (%d rows)", i.maxRows, total)))
	}

	sess := &session{
		store:  i.store,
		tx:     i.tx,
		ruleID: ruleID,
		batch:  batch,
		index:  NewReferenceIndex(),
		log:    log,
	}

	err = i.tx.InTx(ctx, func(txCtx context.Context) (err error) {
		// Anything escaping a stage is batch-fatal; a panic must not leave
		// the run half-committed.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("unexpected import failure: %v", r)
			}
		}()
		if err := sess.processDiseases(txCtx, sheetRows[SheetDisease]); err != nil {
			return err
		}
		if err := sess.processQuestions(txCtx, sheetRows[SheetQuestion]); err != nil {
			return err
		}
		return sess.processConclusions(txCtx, sheetRows[SheetConclusion])
	})
	if err != nil {
		return i.fail(ctx, log, batch, ruleID, started, err)
	}

	warnings := sess.graphWarnings(ctx)

	batch.Status = importbatch.StatusCompleted
	batch.SuccessCount = sess.successCount
	batch.ErrorCount = sess.errorCount
	batch.TotalCount = sess.successCount + sess.errorCount
	if err := i.updateBatch(ctx, batch); err != nil {
		_, ferr := i.fail(ctx, log, batch, ruleID, started, fmt.Errorf("finalize import batch: %w", err))
		return nil, ferr
	}

	metrics.RecordImport(string(batch.Status), i.now().Sub(started).Seconds())
	if i.bus != nil {
		i.bus.Publish(Completed{BatchNo: batch.BatchNo, RuleID: ruleID, Status: batch.Status})
	}
	log.WithFields(logrus.Fields{
		"total":   batch.TotalCount,
		"success": batch.SuccessCount,
		"errors":  batch.ErrorCount,
	}).Info("import completed")

	return &Report{Batch: batch, Warnings: warnings}, nil
}

// fail finalizes the batch as failed and surfaces the fatal error. Staged
// writes were already rolled back by the transaction runner.
func (i *Importer) fail(ctx context.Context, log *logrus.Entry, batch *importbatch.Batch, ruleID int64, started time.Time, cause error) (*Report, error) {
	summary := cause.Error()
	batch.Status = importbatch.StatusFailed
	batch.ErrorSummary = &summary
	if err := i.updateBatch(ctx, batch); err != nil {
		log.WithError(err).Error("could not finalize failed import batch")
	}
	metrics.RecordImport(string(batch.Status), i.now().Sub(started).Seconds())
	if i.bus != nil {
		i.bus.Publish(Completed{BatchNo: batch.BatchNo, RuleID: ruleID, Status: batch.Status})
	}
	log.WithError(cause).Error("import failed")
	return &Report{Batch: batch}, cause
}

// updateBatch persists a status transition on a context detached from the
// caller's cancellation. A run that hits its deadline mid-stage must still
// finalize its batch row; the batch status is the caller's durable record.
func (i *Importer) updateBatch(ctx context.Context, batch *importbatch.Batch) error {
	return i.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		updated, err := i.store.Batches.UpdateBatch(txCtx, batch)
		if err != nil {
			return err
		}
		*batch = *updated
		return nil
	})
}
