package persistence

import (
	"context"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
)

const selectConclusionFields = `id, rule_id, question_id, question_code, answer_content,
	medical_conclusion, medical_special_code, medical_special_desc,
	critical_illness_conclusion, critical_illness_special_code, critical_illness_special_desc,
	next_question_code, display_order, remark, batch_no, created_at`

type ConclusionRepository struct{}

func NewConclusionRepository() conclusion.Repository {
	return &ConclusionRepository{}
}

func (r *ConclusionRepository) Create(ctx context.Context, data *conclusion.Conclusion) (*conclusion.Conclusion, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.Conclusion{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO conclusions (rule_id, question_id, question_code, answer_content,
			medical_conclusion, medical_special_code, medical_special_desc,
			critical_illness_conclusion, critical_illness_special_code, critical_illness_special_desc,
			next_question_code, display_order, remark, batch_no)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+selectConclusionFields,
		data.RuleID,
		data.QuestionID,
		data.QuestionCode,
		data.AnswerContent,
		data.MedicalConclusion,
		data.MedicalSpecialCode,
		data.MedicalSpecialDesc,
		data.CriticalIllnessConclusion,
		data.CriticalIllnessSpecialCode,
		data.CriticalIllnessSpecialDesc,
		data.NextQuestionCode,
		data.DisplayOrder,
		data.Remark,
		data.BatchNo,
	).Scan(
		&row.ID,
		&row.RuleID,
		&row.QuestionID,
		&row.QuestionCode,
		&row.AnswerContent,
		&row.MedicalConclusion,
		&row.MedicalSpecialCode,
		&row.MedicalSpecialDesc,
		&row.CriticalIllnessConclusion,
		&row.CriticalIllnessSpecialCode,
		&row.CriticalIllnessSpecialDesc,
		&row.NextQuestionCode,
		&row.DisplayOrder,
		&row.Remark,
		&row.BatchNo,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainConclusion(&row), nil
}

func (r *ConclusionRepository) ListByBatch(ctx context.Context, batchNo string) ([]*conclusion.Conclusion, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectConclusionFields+`
		 FROM conclusions
		 WHERE batch_no = $1
		 ORDER BY question_code, display_order, id`,
		batchNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*conclusion.Conclusion
	for rows.Next() {
		row := models.Conclusion{}
		if err := rows.Scan(
			&row.ID,
			&row.RuleID,
			&row.QuestionID,
			&row.QuestionCode,
			&row.AnswerContent,
			&row.MedicalConclusion,
			&row.MedicalSpecialCode,
			&row.MedicalSpecialDesc,
			&row.CriticalIllnessConclusion,
			&row.CriticalIllnessSpecialCode,
			&row.CriticalIllnessSpecialDesc,
			&row.NextQuestionCode,
			&row.DisplayOrder,
			&row.Remark,
			&row.BatchNo,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainConclusion(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
