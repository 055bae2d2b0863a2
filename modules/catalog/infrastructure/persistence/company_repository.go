package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/company"
	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/repo"
)

var ErrCompanyNotFound = errors.New("insurance company not found")

const selectCompanyFields = `id, code, name, description, contact, phone, address, remark, status, created_at, updated_at`

type CompanyRepository struct{}

func NewCompanyRepository() company.Repository {
	return &CompanyRepository{}
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	m := models.Company{}
	if err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Contact,
		&m.Phone,
		&m.Address,
		&m.Remark,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainCompany(&m), nil
}

func (r *CompanyRepository) Create(ctx context.Context, data *company.Company) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	return scanCompany(tx.QueryRow(
		ctx,
		`INSERT INTO insurance_companies (code, name, description, contact, phone, address, remark, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+selectCompanyFields,
		data.Code,
		data.Name,
		data.Description,
		data.Contact,
		data.Phone,
		data.Address,
		data.Remark,
		string(data.Status),
	))
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	found, err := scanCompany(tx.QueryRow(
		ctx,
		`SELECT `+selectCompanyFields+` FROM insurance_companies WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return found, nil
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectCompanyFields+` FROM insurance_companies ORDER BY id `+repo.FormatLimitOffset(limit, offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *CompanyRepository) Update(ctx context.Context, data *company.Company) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := scanCompany(tx.QueryRow(
		ctx,
		`UPDATE insurance_companies
		 SET code = $2, name = $3, description = $4, contact = $5, phone = $6,
			 address = $7, remark = $8, status = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+selectCompanyFields,
		data.ID,
		data.Code,
		data.Name,
		data.Description,
		data.Contact,
		data.Phone,
		data.Address,
		data.Remark,
		string(data.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM insurance_companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
