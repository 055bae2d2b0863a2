package persistence

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
)

const selectDiseaseFields = `id, rule_id, code, name, category_code, category_name,
	first_question_code, risk_level, is_common, description, batch_no, created_at`

type DiseaseRepository struct{}

func NewDiseaseRepository() disease.Repository {
	return &DiseaseRepository{}
}

func (r *DiseaseRepository) Create(ctx context.Context, data *disease.Disease) (*disease.Disease, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.Disease{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO diseases (rule_id, code, name, category_code, category_name,
			first_question_code, risk_level, is_common, description, batch_no)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+selectDiseaseFields,
		data.RuleID,
		data.Code,
		data.Name,
		data.CategoryCode,
		data.CategoryName,
		data.FirstQuestionCode,
		data.RiskLevel,
		data.IsCommon,
		data.Description,
		data.BatchNo,
	).Scan(
		&row.ID,
		&row.RuleID,
		&row.Code,
		&row.Name,
		&row.CategoryCode,
		&row.CategoryName,
		&row.FirstQuestionCode,
		&row.RiskLevel,
		&row.IsCommon,
		&row.Description,
		&row.BatchNo,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainDisease(&row), nil
}

func (r *DiseaseRepository) CountByRule(ctx context.Context, ruleID int64) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM diseases WHERE rule_id = $1`,
		ruleID,
	).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DiseaseRepository) ListByBatch(ctx context.Context, batchNo string) ([]*disease.Disease, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectDiseaseFields+` FROM diseases WHERE batch_no = $1 ORDER BY id`,
		batchNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*disease.Disease
	for rows.Next() {
		row := models.Disease{}
		if err := rows.Scan(
			&row.ID,
			&row.RuleID,
			&row.Code,
			&row.Name,
			&row.CategoryCode,
			&row.CategoryName,
			&row.FirstQuestionCode,
			&row.RiskLevel,
			&row.IsCommon,
			&row.Description,
			&row.BatchNo,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainDisease(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
