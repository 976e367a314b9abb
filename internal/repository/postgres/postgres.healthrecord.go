package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type HealthRecordRepo struct {
	PostgresBaseRepo
}

func NewHealthRecordRepository(db database.DB) *HealthRecordRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HealthRecordRepo{PostgresBaseRepo: *repo}
}

func (r *HealthRecordRepo) Create(ctx context.Context, record *models.HealthRecord) error {
	query := `
		INSERT INTO health_records (
			animal_id, head_injury, skin_conditions, abscess, arthritis,
			swollen_hooves, mastitis, fibrosis, asymmetry,
			mammary_skin_conditions, cmt_a, cmt_d, recorded_at,
			created_at, updated_at
		) VALUES (
			:animal_id, :head_injury, :skin_conditions, :abscess, :arthritis,
			:swollen_hooves, :mastitis, :fibrosis, :asymmetry,
			:mammary_skin_conditions, :cmt_a, :cmt_d, :recorded_at,
			:created_at, :updated_at
		) RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, record)
	if err != nil {
		return errors.NewDatabaseError("failed to create health record", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&record.ID); err != nil {
			return errors.NewDatabaseError("failed to read health record id", err)
		}
	}
	return nil
}

func (r *HealthRecordRepo) Get(ctx context.Context, id int64) (*models.HealthRecord, error) {
	record := &models.HealthRecord{}
	query := `SELECT * FROM health_records WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, record, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("health record not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get health record", err)
	}
	return record, nil
}

func (r *HealthRecordRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM health_records WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete health record", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("health record not found", nil)
	}
	return nil
}

func (r *HealthRecordRepo) ListByAnimal(ctx context.Context, animalID int64, filter models.RangeFilter) ([]models.HealthRecord, error) {
	records := []models.HealthRecord{}
	args := []interface{}{animalID}
	query := `SELECT * FROM health_records WHERE animal_id = $1`

	query, args = appendRange(query, "recorded_at", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY recorded_at ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list health records", err)
	}
	return records, nil
}

func (r *HealthRecordRepo) DeleteByAnimal(ctx context.Context, animalID int64, tx database.Transaction) error {
	query := `DELETE FROM health_records WHERE animal_id = $1`

	_, err := r.execOn(ctx, tx, query, animalID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete health records by animal", err)
	}
	return nil
}
