package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/repo"
)

var ErrBatchNotFound = errors.New("import batch not found")

const (
	selectBatchFields = `id, batch_no, import_type, source_file_name, status,
	total_count, success_count, error_count, error_summary, created_by, created_at`

	selectImportRowFields = `id, batch_id, sheet_name, row_number, status, data_type,
	reference_id, error_message, raw_row, created_at`
)

type ImportRepository struct{}

func NewImportRepository() importbatch.Repository {
	return &ImportRepository{}
}

func (r *ImportRepository) CreateBatch(ctx context.Context, b *importbatch.Batch) (*importbatch.Batch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.ImportBatch{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO rule_import_batches (batch_no, import_type, source_file_name, status,
			total_count, success_count, error_count, error_summary, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+selectBatchFields,
		b.BatchNo,
		b.ImportType,
		b.SourceFileName,
		string(b.Status),
		b.TotalCount,
		b.SuccessCount,
		b.ErrorCount,
		b.ErrorSummary,
		b.CreatedBy,
	).Scan(
		&row.ID,
		&row.BatchNo,
		&row.ImportType,
		&row.SourceFileName,
		&row.Status,
		&row.TotalCount,
		&row.SuccessCount,
		&row.ErrorCount,
		&row.ErrorSummary,
		&row.CreatedBy,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainBatch(&row), nil
}

func (r *ImportRepository) UpdateBatch(ctx context.Context, b *importbatch.Batch) (*importbatch.Batch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.ImportBatch{}
	if err := tx.QueryRow(
		ctx,
		`UPDATE rule_import_batches
		 SET status = $2, total_count = $3, success_count = $4, error_count = $5, error_summary = $6
		 WHERE id = $1
		 RETURNING `+selectBatchFields,
		b.ID,
		string(b.Status),
		b.TotalCount,
		b.SuccessCount,
		b.ErrorCount,
		b.ErrorSummary,
	).Scan(
		&row.ID,
		&row.BatchNo,
		&row.ImportType,
		&row.SourceFileName,
		&row.Status,
		&row.TotalCount,
		&row.SuccessCount,
		&row.ErrorCount,
		&row.ErrorSummary,
		&row.CreatedBy,
		&row.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return toDomainBatch(&row), nil
}

func (r *ImportRepository) GetBatchByNo(ctx context.Context, batchNo string) (*importbatch.Batch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.ImportBatch{}
	if err := tx.QueryRow(
		ctx,
		`SELECT `+selectBatchFields+` FROM rule_import_batches WHERE batch_no = $1`,
		batchNo,
	).Scan(
		&row.ID,
		&row.BatchNo,
		&row.ImportType,
		&row.SourceFileName,
		&row.Status,
		&row.TotalCount,
		&row.SuccessCount,
		&row.ErrorCount,
		&row.ErrorSummary,
		&row.CreatedBy,
		&row.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return toDomainBatch(&row), nil
}

func (r *ImportRepository) ListBatches(ctx context.Context, limit, offset int) ([]*importbatch.Batch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + selectBatchFields + ` FROM rule_import_batches ORDER BY id DESC ` +
		repo.FormatLimitOffset(limit, offset)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*importbatch.Batch
	for rows.Next() {
		row := models.ImportBatch{}
		if err := rows.Scan(
			&row.ID,
			&row.BatchNo,
			&row.ImportType,
			&row.SourceFileName,
			&row.Status,
			&row.TotalCount,
			&row.SuccessCount,
			&row.ErrorCount,
			&row.ErrorSummary,
			&row.CreatedBy,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainBatch(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ImportRepository) AddRowResult(ctx context.Context, result *importbatch.RowResult) (*importbatch.RowResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := rawRowJSON(result.RawRow)
	if err != nil {
		return nil, err
	}

	row := models.ImportRow{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO rule_import_rows (batch_id, sheet_name, row_number, status, data_type,
			reference_id, error_message, raw_row)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+selectImportRowFields,
		result.BatchID,
		result.SheetName,
		result.RowNumber,
		string(result.Status),
		string(result.DataType),
		result.ReferenceID,
		result.ErrorMessage,
		raw,
	).Scan(
		&row.ID,
		&row.BatchID,
		&row.SheetName,
		&row.RowNumber,
		&row.Status,
		&row.DataType,
		&row.ReferenceID,
		&row.ErrorMessage,
		&row.RawRow,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainRowResult(&row)
}

func (r *ImportRepository) ListRowResults(ctx context.Context, batchID int64) ([]*importbatch.RowResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectImportRowFields+`
		 FROM rule_import_rows
		 WHERE batch_id = $1
		 ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*importbatch.RowResult
	for rows.Next() {
		row := models.ImportRow{}
		if err := rows.Scan(
			&row.ID,
			&row.BatchID,
			&row.SheetName,
			&row.RowNumber,
			&row.Status,
			&row.DataType,
			&row.ReferenceID,
			&row.ErrorMessage,
			&row.RawRow,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result, err := toDomainRowResult(&row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
