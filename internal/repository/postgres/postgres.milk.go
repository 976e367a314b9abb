package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type DairyMilkRepo struct {
	PostgresBaseRepo
}

func NewDairyMilkRepository(db database.DB) *DairyMilkRepo {
	repo := &PostgresBaseRepo{db: db}
	return &DairyMilkRepo{PostgresBaseRepo: *repo}
}

const dairyMilkInfoColumns = `
	r.name AS ranch_name,
	m.id AS dairy_milk_id,
	m.milk_quality,
	m.milk_quantity,
	m.created_at,
	m.updated_at`

func (r *DairyMilkRepo) Create(ctx context.Context, milk *models.DairyMilk) error {
	query := `
		INSERT INTO dairy_milk (
			ranch_id, milk_quality, milk_quantity, created_at, updated_at
		) VALUES (
			:ranch_id, :milk_quality, :milk_quantity, :created_at, :updated_at
		) RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, milk)
	if err != nil {
		return errors.NewDatabaseError("failed to create milk record", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&milk.ID); err != nil {
			return errors.NewDatabaseError("failed to read milk record id", err)
		}
	}
	return nil
}

func (r *DairyMilkRepo) Get(ctx context.Context, id int64) (*models.DairyMilk, error) {
	milk := &models.DairyMilk{}
	query := `SELECT * FROM dairy_milk WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, milk, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("milk record not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get milk record", err)
	}
	return milk, nil
}

func (r *DairyMilkRepo) Update(ctx context.Context, milk *models.DairyMilk) error {
	query := `
		UPDATE dairy_milk SET
			milk_quality = :milk_quality,
			milk_quantity = :milk_quantity,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, milk)
	if err != nil {
		return errors.NewDatabaseError("failed to update milk record", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("milk record not found", nil)
	}
	return nil
}

func (r *DairyMilkRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM dairy_milk WHERE id = $1`, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete milk record", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("milk record not found", nil)
	}
	return nil
}

func (r *DairyMilkRepo) ListAll(ctx context.Context, filter models.RangeFilter) ([]*models.DairyMilkInfo, error) {
	milk := []*models.DairyMilkInfo{}
	args := []interface{}{}
	query := `
		SELECT ` + dairyMilkInfoColumns + `
		FROM dairy_milk m
		JOIN ranches r ON r.id = m.ranch_id
		WHERE TRUE`

	query, args = appendRange(query, "m.created_at", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY m.created_at ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &milk, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list milk records", err)
	}
	return milk, nil
}

func (r *DairyMilkRepo) ListByUser(ctx context.Context, userID int64, filter models.RangeFilter) ([]*models.DairyMilkInfo, error) {
	milk := []*models.DairyMilkInfo{}
	args := []interface{}{userID}
	query := `
		SELECT ` + dairyMilkInfoColumns + `
		FROM user_ranches ur
		JOIN ranches r ON r.id = ur.ranch_id
		JOIN dairy_milk m ON m.ranch_id = r.id
		WHERE ur.user_id = $1`

	query, args = appendRange(query, "m.created_at", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY m.created_at ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &milk, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list milk records", err)
	}
	return milk, nil
}

func (r *DairyMilkRepo) DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error {
	query := `DELETE FROM dairy_milk WHERE ranch_id = $1`

	_, err := r.execOn(ctx, tx, query, ranchID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete ranch milk records", err)
	}
	return nil
}
