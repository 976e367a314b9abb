package postgres

import (
	"context"
	"database/sql"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type RanchRepo struct {
	PostgresBaseRepo
}

func NewRanchRepository(db database.DB) *RanchRepo {
	repo := &PostgresBaseRepo{db: db}
	return &RanchRepo{PostgresBaseRepo: *repo}
}

func (r *RanchRepo) Create(ctx context.Context, ranch *models.Ranch) error {
	query := `
		INSERT INTO ranches (name, farm_code, primary_species, herd_size, annual_yield, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.GetDB().GetContext(ctx, &ranch.ID, query,
		ranch.Name, ranch.FarmCode, ranch.PrimarySpecies, ranch.HerdSize,
		ranch.AnnualYield, ranch.CreatedAt, ranch.UpdatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to create ranch", err)
	}
	return nil
}

func (r *RanchRepo) Get(ctx context.Context, id int64) (*models.Ranch, error) {
	ranch := &models.Ranch{}
	query := `SELECT * FROM ranches WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, ranch, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("ranch not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get ranch", err)
	}
	return ranch, nil
}

func (r *RanchRepo) Update(ctx context.Context, ranch *models.Ranch) error {
	query := `
		UPDATE ranches SET
			name = :name,
			farm_code = :farm_code,
			primary_species = :primary_species,
			herd_size = :herd_size,
			annual_yield = :annual_yield,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, ranch)
	if err != nil {
		return errors.NewDatabaseError("failed to update ranch", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("ranch not found", nil)
	}
	return nil
}

// Delete runs on the cascade transaction so the ranch row goes away in
// the same commit as its children.
func (r *RanchRepo) Delete(ctx context.Context, id int64, tx database.Transaction) error {
	query := `DELETE FROM ranches WHERE id = $1`

	result, err := r.execOn(ctx, tx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete ranch", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("ranch not found", nil)
	}
	return nil
}

func (r *RanchRepo) ListAll(ctx context.Context) ([]*models.Ranch, error) {
	ranches := []*models.Ranch{}
	query := `SELECT * FROM ranches ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &ranches, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list ranches", err)
	}
	return ranches, nil
}

func (r *RanchRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Ranch, error) {
	ranches := []*models.Ranch{}
	query := `
		SELECT r.*
		FROM ranches r
		JOIN user_ranches ur ON ur.ranch_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &ranches, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list ranches", err)
	}
	return ranches, nil
}

// Associate links the ranch to the user. A ranch already associated with
// any user is rejected; in practice each ranch has one acting user.
func (r *RanchRepo) Associate(ctx context.Context, userID, ranchID int64) error {
	query := `
		INSERT INTO user_ranches (user_id, ranch_id)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM user_ranches WHERE ranch_id = $2)`

	result, err := r.db.GetDB().ExecContext(ctx, query, userID, ranchID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("ranch already associated", err)
		}
		return errors.NewDatabaseError("failed to associate ranch", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewConflictError("ranch already associated", nil)
	}
	return nil
}

func (r *RanchRepo) DeleteAssociationsByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error {
	query := `DELETE FROM user_ranches WHERE ranch_id = $1`

	_, err := r.execOn(ctx, tx, query, ranchID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete ranch associations", err)
	}
	return nil
}
