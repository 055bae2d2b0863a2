package controllers

import (
	"time"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
)

type RuleResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Version         string    `json:"version"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	HasImportedData bool      `json:"has_imported_data"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toRuleResponse(r *rule.UnderwritingRule) *RuleResponse {
	return &RuleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Version:     r.Version,
		Description: r.Description,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type BatchResponse struct {
	BatchNo        string    `json:"batch_no"`
	ImportType     string    `json:"import_type"`
	SourceFileName string    `json:"source_file_name"`
	Status         string    `json:"status"`
	TotalCount     int       `json:"total_count"`
	SuccessCount   int       `json:"success_count"`
	ErrorCount     int       `json:"error_count"`
	ErrorSummary   *string   `json:"error_summary,omitempty"`
	CreatedBy      *int64    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toBatchResponse(b *importbatch.Batch) *BatchResponse {
	return &BatchResponse{
		BatchNo:        b.BatchNo,
		ImportType:     b.ImportType,
		SourceFileName: b.SourceFileName,
		Status:         string(b.Status),
		TotalCount:     b.TotalCount,
		SuccessCount:   b.SuccessCount,
		ErrorCount:     b.ErrorCount,
		ErrorSummary:   b.ErrorSummary,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
	}
}

type RowResultResponse struct {
	SheetName    string            `json:"sheet_name"`
	RowNumber    int               `json:"row_number"`
	Status       string            `json:"status"`
	DataType     string            `json:"data_type"`
	ReferenceID  *int64            `json:"reference_id,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
	RawRow       map[string]string `json:"raw_row,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toRowResultResponses(rows []*importbatch.RowResult) []*RowResultResponse {
	out := make([]*RowResultResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &RowResultResponse{
			SheetName:    r.SheetName,
			RowNumber:    r.RowNumber,
			Status:       string(r.Status),
			DataType:     string(r.DataType),
			ReferenceID:  r.ReferenceID,
			ErrorMessage: r.ErrorMessage,
			RawRow:       r.RawRow,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

type ImportReportResponse struct {
	Batch    *BatchResponse `json:"batch"`
	Warnings []string       `json:"warnings,omitempty"`
}
