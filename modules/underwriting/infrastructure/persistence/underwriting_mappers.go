package persistence

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
)

func toDomainRule(row *models.UnderwritingRule) *rule.UnderwritingRule {
	return &rule.UnderwritingRule{
		ID:          row.ID,
		Name:        row.Name,
		Version:     row.Version,
		Description: row.Description,
		Status:      rule.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainDisease(row *models.Disease) *disease.Disease {
	return &disease.Disease{
		ID:                row.ID,
		RuleID:            row.RuleID,
		Code:              row.Code,
		Name:              row.Name,
		CategoryCode:      row.CategoryCode,
		CategoryName:      row.CategoryName,
		FirstQuestionCode: row.FirstQuestionCode,
		RiskLevel:         row.RiskLevel,
		IsCommon:          row.IsCommon,
		Description:       row.Description,
		BatchNo:           row.BatchNo,
		CreatedAt:         row.CreatedAt,
	}
}

func toDomainQuestion(row *models.Question) *question.Question {
	return &question.Question{
		ID:        row.ID,
		RuleID:    row.RuleID,
		Code:      row.Code,
		Content:   row.Content,
		Attribute: question.Attribute(row.Attribute),
		Arity:     question.Arity(row.Arity),
		Remark:    row.Remark,
		BatchNo:   row.BatchNo,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainConclusion(row *models.Conclusion) *conclusion.Conclusion {
	return &conclusion.Conclusion{
		ID:                         row.ID,
		RuleID:                     row.RuleID,
		QuestionID:                 row.QuestionID,
		QuestionCode:               row.QuestionCode,
		AnswerContent:              row.AnswerContent,
		MedicalConclusion:          row.MedicalConclusion,
		MedicalSpecialCode:         row.MedicalSpecialCode,
		MedicalSpecialDesc:         row.MedicalSpecialDesc,
		CriticalIllnessConclusion:  row.CriticalIllnessConclusion,
		CriticalIllnessSpecialCode: row.CriticalIllnessSpecialCode,
		CriticalIllnessSpecialDesc: row.CriticalIllnessSpecialDesc,
		NextQuestionCode:           row.NextQuestionCode,
		DisplayOrder:               row.DisplayOrder,
		Remark:                     row.Remark,
		BatchNo:                    row.BatchNo,
		CreatedAt:                  row.CreatedAt,
	}
}

func toDomainBatch(row *models.ImportBatch) *importbatch.Batch {
	return &importbatch.Batch{
		ID:             row.ID,
		BatchNo:        row.BatchNo,
		ImportType:     row.ImportType,
		SourceFileName: row.SourceFileName,
		Status:         importbatch.Status(row.Status),
		TotalCount:     row.TotalCount,
		SuccessCount:   row.SuccessCount,
		ErrorCount:     row.ErrorCount,
		ErrorSummary:   row.ErrorSummary,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt,
	}
}

func toDomainRowResult(row *models.ImportRow) (*importbatch.RowResult, error) {
	var raw map[string]string
	if len(row.RawRow) > 0 {
		if err := json.Unmarshal(row.RawRow, &raw); err != nil {
			return nil, errors.Wrap(err, "decode raw row snapshot")
		}
	}
	return &importbatch.RowResult{
		ID:           row.ID,
		BatchID:      row.BatchID,
		SheetName:    row.SheetName,
		RowNumber:    row.RowNumber,
		Status:       importbatch.RowStatus(row.Status),
		DataType:     importbatch.DataType(row.DataType),
		ReferenceID:  row.ReferenceID,
		ErrorMessage: row.ErrorMessage,
		RawRow:       raw,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func rawRowJSON(raw map[string]string) ([]byte, error) {
	if raw == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "encode raw row snapshot")
	}
	return b, nil
}
