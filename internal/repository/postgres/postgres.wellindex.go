package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type WellIndexRepo struct {
	PostgresBaseRepo
}

func NewWellIndexRepository(db database.DB) *WellIndexRepo {
	repo := &PostgresBaseRepo{db: db}
	return &WellIndexRepo{PostgresBaseRepo: *repo}
}

func (r *WellIndexRepo) Create(ctx context.Context, index *models.WellIndex) error {
	query := `
		INSERT INTO well_indexes (
			ranch_id, index_value, created_at, updated_at
		) VALUES (
			:ranch_id, :index_value, :created_at, :updated_at
		) RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, index)
	if err != nil {
		return errors.NewDatabaseError("failed to create wellbeing index", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&index.ID); err != nil {
			return errors.NewDatabaseError("failed to read wellbeing index id", err)
		}
	}
	return nil
}

func (r *WellIndexRepo) Get(ctx context.Context, id int64) (*models.WellIndex, error) {
	index := &models.WellIndex{}
	query := `SELECT * FROM well_indexes WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, index, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("wellbeing index not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get wellbeing index", err)
	}
	return index, nil
}

func (r *WellIndexRepo) Update(ctx context.Context, index *models.WellIndex) error {
	query := `
		UPDATE well_indexes SET
			index_value = :index_value,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, index)
	if err != nil {
		return errors.NewDatabaseError("failed to update wellbeing index", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("wellbeing index not found", nil)
	}
	return nil
}

func (r *WellIndexRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM well_indexes WHERE id = $1`, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete wellbeing index", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("wellbeing index not found", nil)
	}
	return nil
}

func (r *WellIndexRepo) ListAll(ctx context.Context, filter models.RangeFilter) ([]*models.WellIndexInfo, error) {
	indexes := []*models.WellIndexInfo{}
	args := []interface{}{}
	query := `
		SELECT
			r.name AS ranch_name,
			w.index_value,
			w.created_at,
			w.updated_at
		FROM well_indexes w
		JOIN ranches r ON r.id = w.ranch_id
		WHERE TRUE`

	query, args = appendRange(query, "w.created_at", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY w.created_at ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &indexes, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list wellbeing indexes", err)
	}
	return indexes, nil
}

func (r *WellIndexRepo) ListByUser(ctx context.Context, userID int64, filter models.RangeFilter) ([]*models.WellIndexInfo, error) {
	indexes := []*models.WellIndexInfo{}
	args := []interface{}{userID}
	query := `
		SELECT
			r.name AS ranch_name,
			w.index_value,
			w.created_at,
			w.updated_at
		FROM user_ranches ur
		JOIN ranches r ON r.id = ur.ranch_id
		JOIN well_indexes w ON w.ranch_id = r.id
		WHERE ur.user_id = $1`

	query, args = appendRange(query, "w.created_at", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY w.created_at ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &indexes, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list wellbeing indexes", err)
	}
	return indexes, nil
}

func (r *WellIndexRepo) DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error {
	query := `DELETE FROM well_indexes WHERE ranch_id = $1`

	_, err := r.execOn(ctx, tx, query, ranchID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete ranch wellbeing indexes", err)
	}
	return nil
}
