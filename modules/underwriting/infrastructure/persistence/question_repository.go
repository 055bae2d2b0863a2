package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
)

const selectQuestionFields = `id, rule_id, code, content, attribute, arity, remark, batch_no, created_at`

type QuestionRepository struct{}

func NewQuestionRepository() question.Repository {
	return &QuestionRepository{}
}

func (r *QuestionRepository) Create(ctx context.Context, data *question.Question) (*question.Question, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.Question{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO questions (rule_id, code, content, attribute, arity, remark, batch_no)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+selectQuestionFields,
		data.RuleID,
		data.Code,
		data.Content,
		string(data.Attribute),
		string(data.Arity),
		data.Remark,
		data.BatchNo,
	).Scan(
		&row.ID,
		&row.RuleID,
		&row.Code,
		&row.Content,
		&row.Attribute,
		&row.Arity,
		&row.Remark,
		&row.BatchNo,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainQuestion(&row), nil
}

func (r *QuestionRepository) GetByCode(ctx context.Context, ruleID int64, code string) (*question.Question, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.Question{}
	if err := tx.QueryRow(
		ctx,
		`SELECT `+selectQuestionFields+`
		 FROM questions
		 WHERE rule_id = $1 AND code = $2
		 ORDER BY id DESC
		 LIMIT 1`,
		ruleID,
		code,
	).Scan(
		&row.ID,
		&row.RuleID,
		&row.Code,
		&row.Content,
		&row.Attribute,
		&row.Arity,
		&row.Remark,
		&row.BatchNo,
		&row.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &question.NotFoundError{RuleID: ruleID, Code: code}
		}
		return nil, err
	}
	return toDomainQuestion(&row), nil
}

func (r *QuestionRepository) ListByBatch(ctx context.Context, batchNo string) ([]*question.Question, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectQuestionFields+` FROM questions WHERE batch_no = $1 ORDER BY id`,
		batchNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*question.Question
	for rows.Next() {
		row := models.Question{}
		if err := rows.Scan(
			&row.ID,
			&row.RuleID,
			&row.Code,
			&row.Content,
			&row.Attribute,
			&row.Arity,
			&row.Remark,
			&row.BatchNo,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainQuestion(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
