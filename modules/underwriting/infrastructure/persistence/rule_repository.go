package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/repo"
)

var ErrRuleNotFound = errors.New("underwriting rule not found")

const (
	selectRuleFields = `id, name, version, description, status, created_at, updated_at`
)

type RuleRepository struct{}

func NewRuleRepository() rule.Repository {
	return &RuleRepository{}
}

func (r *RuleRepository) Create(ctx context.Context, data *rule.UnderwritingRule) (*rule.UnderwritingRule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.UnderwritingRule{}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO underwriting_rules (name, version, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+selectRuleFields,
		data.Name,
		data.Version,
		data.Description,
		string(data.Status),
	).Scan(
		&row.ID,
		&row.Name,
		&row.Version,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainRule(&row), nil
}

func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*rule.UnderwritingRule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.UnderwritingRule{}
	if err := tx.QueryRow(
		ctx,
		`SELECT `+selectRuleFields+` FROM underwriting_rules WHERE id = $1`,
		id,
	).Scan(
		&row.ID,
		&row.Name,
		&row.Version,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return toDomainRule(&row), nil
}

func (r *RuleRepository) List(ctx context.Context, limit, offset int) ([]*rule.UnderwritingRule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + selectRuleFields + ` FROM underwriting_rules ORDER BY id DESC ` +
		repo.FormatLimitOffset(limit, offset)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*rule.UnderwritingRule
	for rows.Next() {
		row := models.UnderwritingRule{}
		if err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Version,
			&row.Description,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainRule(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *RuleRepository) Update(ctx context.Context, data *rule.UnderwritingRule) (*rule.UnderwritingRule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := models.UnderwritingRule{}
	if err := tx.QueryRow(
		ctx,
		`UPDATE underwriting_rules
		 SET name = $2, version = $3, description = $4, status = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+selectRuleFields,
		data.ID,
		data.Name,
		data.Version,
		data.Description,
		string(data.Status),
	).Scan(
		&row.ID,
		&row.Name,
		&row.Version,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return toDomainRule(&row), nil
}

func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM underwriting_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}
