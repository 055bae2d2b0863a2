package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medinsure/underwriting-admin/pkg/serrors"
)

// conflictOn maps a unique violation to a coded conflict error the API layer
// can surface with a 409. Other errors pass through untouched.
func conflictOn(err error, code, message, localeKey string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return serrors.NewError(code, message, localeKey)
	}
	return err
}
