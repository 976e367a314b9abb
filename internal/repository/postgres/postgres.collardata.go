package postgres

import (
	"context"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type CollarDataRepo struct {
	PostgresBaseRepo
}

func NewCollarDataRepository(db database.DB) *CollarDataRepo {
	repo := &PostgresBaseRepo{db: db}
	return &CollarDataRepo{PostgresBaseRepo: *repo}
}

const collarDataInsert = `
	INSERT INTO collar_gps_data (
		collar_id, coordinates, temperature, battery_percentage,
		altitude, humidity, timestamp, created_at, updated_at
	) VALUES (
		:collar_id, ST_SetSRID(ST_MakePoint(:longitude, :latitude), 4326),
		:temperature, :battery_percentage, :altitude, :humidity,
		:timestamp, :created_at, :updated_at
	)`

func (r *CollarDataRepo) Insert(ctx context.Context, data *models.CollarGPSData) error {
	rows, err := r.db.GetDB().NamedQueryContext(ctx, collarDataInsert+` RETURNING id`, data)
	if err != nil {
		return errors.NewDatabaseError("failed to insert collar data", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&data.ID); err != nil {
			return errors.NewDatabaseError("failed to read collar data id", err)
		}
	}
	return nil
}

// InsertBatch writes all pings in one multi-row statement; sqlx expands
// the named query once per slice element.
func (r *CollarDataRepo) InsertBatch(ctx context.Context, batch []*models.CollarGPSData) error {
	if len(batch) == 0 {
		return nil
	}

	_, err := r.db.GetDB().NamedExecContext(ctx, collarDataInsert, batch)
	if err != nil {
		return errors.NewDatabaseError("failed to insert collar data batch", err)
	}
	return nil
}

func (r *CollarDataRepo) ListByCollar(ctx context.Context, collarID int64, filter models.RangeFilter) ([]models.CollarGPSData, error) {
	data := []models.CollarGPSData{}
	args := []interface{}{collarID}
	query := `
		SELECT
			id,
			collar_id,
			ST_X(coordinates) AS longitude,
			ST_Y(coordinates) AS latitude,
			temperature,
			battery_percentage,
			altitude,
			humidity,
			timestamp,
			created_at,
			updated_at
		FROM collar_gps_data
		WHERE collar_id = $1`

	query, args = appendRange(query, "timestamp", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY timestamp ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &data, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list collar data", err)
	}
	return data, nil
}

func (r *CollarDataRepo) DeleteByCollar(ctx context.Context, collarID int64, tx database.Transaction) error {
	query := `DELETE FROM collar_gps_data WHERE collar_id = $1`

	_, err := r.execOn(ctx, tx, query, collarID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete collar data", err)
	}
	return nil
}
