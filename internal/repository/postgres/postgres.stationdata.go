package postgres

import (
	"context"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type StationDataRepo struct {
	PostgresBaseRepo
}

func NewStationDataRepository(db database.DB) *StationDataRepo {
	repo := &PostgresBaseRepo{db: db}
	return &StationDataRepo{PostgresBaseRepo: *repo}
}

func (r *StationDataRepo) InsertReading(ctx context.Context, reading *models.StationReading) error {
	query := `
		INSERT INTO station_readings (
			station_id, temperature, humidity, precipitation, pressure,
			wind_speed, wind_direction, solar_radiation, pm1, pm2_5, pm10,
			co2, aqi, timestamp, created_at
		) VALUES (
			:station_id, :temperature, :humidity, :precipitation, :pressure,
			:wind_speed, :wind_direction, :solar_radiation, :pm1, :pm2_5, :pm10,
			:co2, :aqi, :timestamp, :created_at
		) RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to insert station reading", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&reading.ID); err != nil {
			return errors.NewDatabaseError("failed to read station reading id", err)
		}
	}
	return nil
}

func (r *StationDataRepo) ListByStation(ctx context.Context, stationID int64, filter models.RangeFilter) ([]models.StationReading, error) {
	readings := []models.StationReading{}
	args := []interface{}{stationID}
	query := `SELECT * FROM station_readings WHERE station_id = $1`

	query, args = appendRange(query, "timestamp", filter, args)
	args = append(args, filter.EffectiveLimit())
	query += fmt.Sprintf(" ORDER BY timestamp ASC LIMIT $%d", len(args))

	err := r.db.GetDB().SelectContext(ctx, &readings, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list station readings", err)
	}
	return readings, nil
}

func (r *StationDataRepo) DeleteByStation(ctx context.Context, stationID int64, tx database.Transaction) error {
	query := `DELETE FROM station_readings WHERE station_id = $1`

	_, err := r.execOn(ctx, tx, query, stationID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete station readings", err)
	}
	return nil
}
