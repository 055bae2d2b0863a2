package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// StructuralError is batch-fatal: the run aborts, staged writes roll back and
// the batch finalizes as failed. Problems collects every missing sheet and
// column found so the caller gets the full diagnosis in one response.
type StructuralError struct {
	Message  string
	Problems []string
}

func (e *StructuralError) Error() string {
	if len(e.Problems) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Problems, "; ")
}

func NewStructuralError(message string, problems ...string) *StructuralError {
	return &StructuralError{Message: message, Problems: problems}
}

// AsStructural unwraps err into a StructuralError, if it is one.
func AsStructural(err error) (*StructuralError, bool) {
	var se *StructuralError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// RowErrorKind classifies row-level failures. All of them skip the offending
// row, get recorded with the raw row snapshot, and never abort the stage.
type RowErrorKind string

const (
	RowErrorValidation  RowErrorKind = "validation"
	RowErrorReferential RowErrorKind = "referential"
	RowErrorPersistence RowErrorKind = "persistence"
)

type RowError struct {
	Kind    RowErrorKind
	Message string
}

func (e *RowError) Error() string {
	return e.Message
}

func rowValidationErrorf(format string, args ...interface{}) *RowError {
	return &RowError{Kind: RowErrorValidation, Message: fmt.Sprintf(format, args...)}
}

func rowReferentialErrorf(format string, args ...interface{}) *RowError {
	return &RowError{Kind: RowErrorReferential, Message: fmt.Sprintf(format, args...)}
}

// classifyPersistenceError turns a constraint violation from the store into a
// row-level persistence error. Anything else is unexpected and batch-fatal.
func classifyPersistenceError(err error) (*RowError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return &RowError{
				Kind:    RowErrorPersistence,
				Message: fmt.Sprintf("unique constraint violated (%s)", pgErr.ConstraintName),
			}, true
		case "23503": // foreign_key_violation
			return &RowError{
				Kind:    RowErrorPersistence,
				Message: fmt.Sprintf("foreign key violated (%s)", pgErr.ConstraintName),
			}, true
		case "23502", "23514": // not_null_violation, check_violation
			return &RowError{
				Kind:    RowErrorPersistence,
				Message: fmt.Sprintf("constraint violated (%s)", pgErr.ConstraintName),
			}, true
		}
	}
	return nil, false
}
