package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/channel"
	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence/models"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/repo"
)

var ErrChannelNotFound = errors.New("channel not found")

const selectChannelFields = `id, code, name, description, status, created_at, updated_at`

type ChannelRepository struct{}

func NewChannelRepository() channel.Repository {
	return &ChannelRepository{}
}

func scanChannel(row pgx.Row) (*channel.Channel, error) {
	m := models.Channel{}
	if err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainChannel(&m), nil
}

func (r *ChannelRepository) Create(ctx context.Context, data *channel.Channel) (*channel.Channel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	return scanChannel(tx.QueryRow(
		ctx,
		`INSERT INTO channels (code, name, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+selectChannelFields,
		data.Code,
		data.Name,
		data.Description,
		string(data.Status),
	))
}

func (r *ChannelRepository) GetByID(ctx context.Context, id int64) (*channel.Channel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	found, err := scanChannel(tx.QueryRow(
		ctx,
		`SELECT `+selectChannelFields+` FROM channels WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return found, nil
}

func (r *ChannelRepository) List(ctx context.Context, limit, offset int) ([]*channel.Channel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT `+selectChannelFields+` FROM channels ORDER BY id `+repo.FormatLimitOffset(limit, offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*channel.Channel
	for rows.Next() {
		found, err := scanChannel(rows)
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

func (r *ChannelRepository) Update(ctx context.Context, data *channel.Channel) (*channel.Channel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := scanChannel(tx.QueryRow(
		ctx,
		`UPDATE channels
		 SET code = $2, name = $3, description = $4, status = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+selectChannelFields,
		data.ID,
		data.Code,
		data.Name,
		data.Description,
		string(data.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *ChannelRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrChannelNotFound
	}
	return nil
}
