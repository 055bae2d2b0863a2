package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/pkg/metrics"
)

// session carries the state of one import run across the three stages.
// Stages must run in dependency order: diseases, then questions, then
// conclusions, so that every code a later stage references has already had a
// chance to enter the index.
type session struct {
	store  Store
	tx     TxRunner
	ruleID int64
	batch  *importbatch.Batch
	index  *ReferenceIndex
	log    *logrus.Entry

	successCount int
	errorCount   int
	warnings     []string

	// staged for the post-import graph pass
	diseases []*disease.Disease
	edges    map[string][]string
}

func (s *session) warn(format string, args ...interface{}) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func (s *session) processDiseases(ctx context.Context, rows []Row) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import interrupted at sheet %s row %d: %w", SheetDisease, row.Number, err)
		}

		d, rowErr := mapDiseaseRow(row, s.ruleID, s.batch.BatchNo)
		if rowErr == nil && s.index.Has(KindDisease, d.Code) {
			rowErr = rowValidationErrorf("duplicate disease code %q", d.Code)
		}
		if rowErr != nil {
			if err := s.recordError(ctx, SheetDisease, row, importbatch.DataTypeDisease, rowErr); err != nil {
				return err
			}
			continue
		}

		var created *disease.Disease
		err := s.tx.Nested(ctx, func(txCtx context.Context) error {
			var err error
			created, err = s.store.Diseases.Create(txCtx, d)
			return err
		})
		if err != nil {
			rowErr, ok := classifyPersistenceError(err)
			if !ok {
				return fmt.Errorf("persist disease %q: %w", d.Code, err)
			}
			if err := s.recordError(ctx, SheetDisease, row, importbatch.DataTypeDisease, rowErr); err != nil {
				return err
			}
			continue
		}

		if err := s.index.Register(KindDisease, created.Code, created.ID); err != nil {
			return err
		}
		s.diseases = append(s.diseases, created)
		if err := s.recordSuccess(ctx, SheetDisease, row, importbatch.DataTypeDisease, created.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) processQuestions(ctx context.Context, rows []Row) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import interrupted at sheet %s row %d: %w", SheetQuestion, row.Number, err)
		}

		q, rowErr := mapQuestionRow(row, s.ruleID, s.batch.BatchNo, s.warn)
		if rowErr == nil && s.index.Has(KindQuestion, q.Code) {
			rowErr = rowValidationErrorf("duplicate question code %q", q.Code)
		}
		if rowErr != nil {
			if err := s.recordError(ctx, SheetQuestion, row, importbatch.DataTypeQuestion, rowErr); err != nil {
				return err
			}
			continue
		}

		var created *question.Question
		err := s.tx.Nested(ctx, func(txCtx context.Context) error {
			var err error
			created, err = s.store.Questions.Create(txCtx, q)
			return err
		})
		if err != nil {
			rowErr, ok := classifyPersistenceError(err)
			if !ok {
				return fmt.Errorf("persist question %q: %w", q.Code, err)
			}
			if err := s.recordError(ctx, SheetQuestion, row, importbatch.DataTypeQuestion, rowErr); err != nil {
				return err
			}
			continue
		}

		if err := s.index.Register(KindQuestion, created.Code, created.ID); err != nil {
			return err
		}
		if err := s.recordSuccess(ctx, SheetQuestion, row, importbatch.DataTypeQuestion, created.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) processConclusions(ctx context.Context, rows []Row) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import interrupted at sheet %s row %d: %w", SheetConclusion, row.Number, err)
		}

		c, rowErr := mapConclusionRow(row, s.ruleID, s.batch.BatchNo)
		if rowErr != nil {
			if err := s.recordError(ctx, SheetConclusion, row, importbatch.DataTypeAnswer, rowErr); err != nil {
				return err
			}
			continue
		}

		questionID, found, err := s.resolveQuestion(ctx, c.QuestionCode)
		if err != nil {
			return err
		}
		if !found {
			rowErr = rowReferentialErrorf("question %q does not exist", c.QuestionCode)
			if err := s.recordError(ctx, SheetConclusion, row, importbatch.DataTypeAnswer, rowErr); err != nil {
				return err
			}
			continue
		}
		c.QuestionID = questionID

		if c.NextQuestionCode != "" {
			_, found, err := s.resolveQuestion(ctx, c.NextQuestionCode)
			if err != nil {
				return err
			}
			if !found {
				rowErr = rowReferentialErrorf("next question %q does not exist", c.NextQuestionCode)
				if err := s.recordError(ctx, SheetConclusion, row, importbatch.DataTypeAnswer, rowErr); err != nil {
					return err
				}
				continue
			}
		}

		var created *conclusion.Conclusion
		err = s.tx.Nested(ctx, func(txCtx context.Context) error {
			var err error
			created, err = s.store.Conclusions.Create(txCtx, c)
			return err
		})
		if err != nil {
			rowErr, ok := classifyPersistenceError(err)
			if !ok {
				return fmt.Errorf("persist conclusion for question %q: %w", c.QuestionCode, err)
			}
			if err := s.recordError(ctx, SheetConclusion, row, importbatch.DataTypeAnswer, rowErr); err != nil {
				return err
			}
			continue
		}

		if created.NextQuestionCode != "" {
			if s.edges == nil {
				s.edges = make(map[string][]string)
			}
			s.edges[created.QuestionCode] = append(s.edges[created.QuestionCode], created.NextQuestionCode)
		}
		if err := s.recordSuccess(ctx, SheetConclusion, row, importbatch.DataTypeAnswer, created.ID); err != nil {
			return err
		}
	}
	return nil
}

// resolveQuestion looks up a question code in this run's index first, then
// falls back to previously imported questions of the same rule.
func (s *session) resolveQuestion(ctx context.Context, code string) (int64, bool, error) {
	if id, ok := s.index.Lookup(KindQuestion, code); ok {
		return id, true, nil
	}
	q, err := s.store.Questions.GetByCode(ctx, s.ruleID, code)
	if err != nil {
		var nf *question.NotFoundError
		if errors.As(err, &nf) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("resolve question %q: %w", code, err)
	}
	return q.ID, true, nil
}

func (s *session) recordSuccess(ctx context.Context, sheet string, row Row, dt importbatch.DataType, refID int64) error {
	s.successCount++
	metrics.RecordImportRow(sheet, string(importbatch.RowSuccess))
	_, err := s.store.Batches.AddRowResult(ctx, &importbatch.RowResult{
		BatchID:     s.batch.ID,
		SheetName:   sheet,
		RowNumber:   row.Number,
		Status:      importbatch.RowSuccess,
		DataType:    dt,
		ReferenceID: &refID,
		RawRow:      row.Cells,
	})
	return err
}

func (s *session) recordError(ctx context.Context, sheet string, row Row, dt importbatch.DataType, rowErr *RowError) error {
	s.errorCount++
	metrics.RecordImportRow(sheet, string(importbatch.RowError))
	s.log.WithFields(logrus.Fields{
		"sheet": sheet,
		"row":   row.Number,
		"kind":  rowErr.Kind,
	}).Warn(rowErr.Message)
	msg := string(rowErr.Kind) + ": " + rowErr.Message
	_, err := s.store.Batches.AddRowResult(ctx, &importbatch.RowResult{
		BatchID:      s.batch.ID,
		SheetName:    sheet,
		RowNumber:    row.Number,
		Status:       importbatch.RowError,
		DataType:     dt,
		ErrorMessage: &msg,
		RawRow:       row.Cells,
	})
	return err
}
