package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/product"
	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/repo"
)

var ErrProductNotFound = errors.New("product not found")

const selectProductFields = `id, code, name, type_code, company_id, channel_id, rule_id, status, created_at, updated_at`

type ProductRepository struct{}

func NewProductRepository() product.Repository {
	return &ProductRepository{}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	m := models.Product{}
	if err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Name,
		&m.TypeCode,
		&m.CompanyID,
		&m.ChannelID,
		&m.RuleID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainProduct(&m), nil
}

func (r *ProductRepository) Create(ctx context.Context, data *product.Product) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	return scanProduct(tx.QueryRow(
		ctx,
		`INSERT INTO products (code, name, type_code, company_id, channel_id, rule_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+selectProductFields,
		data.Code,
		data.Name,
		data.TypeCode,
		data.CompanyID,
		data.ChannelID,
		data.RuleID,
		string(data.Status),
	))
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	found, err := scanProduct(tx.QueryRow(
		ctx,
		`SELECT `+selectProductFields+` FROM products WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return found, nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectProductFields+` FROM products ORDER BY id `+repo.FormatLimitOffset(limit, offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*product.Product
	for rows.Next() {
		found, err := scanProduct(rows)
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

func (r *ProductRepository) Update(ctx context.Context, data *product.Product) (*product.Product, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := scanProduct(tx.QueryRow(
		ctx,
		`UPDATE products
		 SET code = $2, name = $3, type_code = $4, company_id = $5, channel_id = $6,
			 rule_id = $7, status = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING `+selectProductFields,
		data.ID,
		data.Code,
		data.Name,
		data.TypeCode,
		data.CompanyID,
		data.ChannelID,
		data.RuleID,
		string(data.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
