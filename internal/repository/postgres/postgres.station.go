package postgres

import (
	"context"
	"database/sql"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type StationRepo struct {
	PostgresBaseRepo
}

func NewStationRepository(db database.DB) *StationRepo {
	repo := &PostgresBaseRepo{db: db}
	return &StationRepo{PostgresBaseRepo: *repo}
}

// stationColumns projects the geometry column back into lon/lat so the Go
// side never parses geometry blobs. Axis order: x=longitude, y=latitude.
const stationColumns = `
	id,
	name,
	ST_X(location) AS longitude,
	ST_Y(location) AS latitude,
	created_at,
	updated_at`

func (r *StationRepo) Create(ctx context.Context, station *models.Station) error {
	query := `
		INSERT INTO stations (name, location, created_at, updated_at)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4, $5)
		RETURNING id`

	err := r.db.GetDB().GetContext(ctx, &station.ID, query,
		station.Name, station.Longitude, station.Latitude,
		station.CreatedAt, station.UpdatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to create station", err)
	}
	return nil
}

func (r *StationRepo) Get(ctx context.Context, id int64) (*models.Station, error) {
	station := &models.Station{}
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, station, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("station not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get station", err)
	}
	return station, nil
}

func (r *StationRepo) Update(ctx context.Context, station *models.Station) error {
	query := `
		UPDATE stations SET
			name = $1,
			location = ST_SetSRID(ST_MakePoint($2, $3), 4326),
			updated_at = $4
		WHERE id = $5`

	result, err := r.db.GetDB().ExecContext(ctx, query,
		station.Name, station.Longitude, station.Latitude, station.UpdatedAt, station.ID)
	if err != nil {
		return errors.NewDatabaseError("failed to update station", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("station not found", nil)
	}
	return nil
}

// Delete runs on the cascade transaction that removed the station's
// readings and ranch associations.
func (r *StationRepo) Delete(ctx context.Context, id int64, tx database.Transaction) error {
	query := `DELETE FROM stations WHERE id = $1`

	result, err := r.execOn(ctx, tx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete station", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("station not found", nil)
	}
	return nil
}

func (r *StationRepo) ListAll(ctx context.Context) ([]*models.Station, error) {
	stations := []*models.Station{}
	query := `SELECT ` + stationColumns + ` FROM stations ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &stations, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list stations", err)
	}
	return stations, nil
}

func (r *StationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.StationInfo, error) {
	stations := []*models.StationInfo{}
	query := `
		SELECT DISTINCT s.id AS station_id, s.name AS station_name
		FROM stations s
		JOIN station_ranches sr ON s.id = sr.station_id
		JOIN user_ranches ur ON sr.ranch_id = ur.ranch_id
		WHERE ur.user_id = $1`

	err := r.db.GetDB().SelectContext(ctx, &stations, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list stations", err)
	}
	return stations, nil
}

func (r *StationRepo) Associate(ctx context.Context, stationID, ranchID int64) error {
	query := `INSERT INTO station_ranches (station_id, ranch_id) VALUES ($1, $2)`

	_, err := r.db.GetDB().ExecContext(ctx, query, stationID, ranchID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("station already associated with ranch", err)
		}
		return errors.NewDatabaseError("failed to associate station", err)
	}
	return nil
}

func (r *StationRepo) DeleteAssociationsByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error {
	query := `DELETE FROM station_ranches WHERE ranch_id = $1`

	_, err := r.execOn(ctx, tx, query, ranchID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete station associations", err)
	}
	return nil
}

func (r *StationRepo) DeleteAssociationsByStation(ctx context.Context, stationID int64, tx database.Transaction) error {
	query := `DELETE FROM station_ranches WHERE station_id = $1`

	_, err := r.execOn(ctx, tx, query, stationID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete station associations", err)
	}
	return nil
}
