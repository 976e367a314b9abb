package wellness

import (
	"context"
	"strings"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/geo"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ListStations returns the stations visible to the caller. The scoped
// listing is distinct across the caller's ranches.
func (s *WellnessService) ListStations(ctx context.Context) ([]*models.StationInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceStations, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		stations, err := s.Stations.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		infos := make([]*models.StationInfo, 0, len(stations))
		for _, station := range stations {
			infos = append(infos, &models.StationInfo{
				StationID:   station.ID,
				StationName: station.Name,
			})
		}
		return infos, nil
	}

	return s.Stations.ListByUser(ctx, user.UserID)
}

// CreateStation registers a weather station at the given coordinates
func (s *WellnessService) CreateStation(ctx context.Context, station *models.Station) error {
	_, _, err := s.authorize(ctx, auth.ResourceStations, auth.ActionWrite)
	if err != nil {
		return err
	}

	if strings.TrimSpace(station.Name) == "" {
		return errors.NewValidationError("station name is required", nil)
	}
	if station.Latitude < -90 || station.Latitude > 90 {
		return errors.NewValidationError("latitude out of range", nil)
	}
	if station.Longitude < -180 || station.Longitude > 180 {
		return errors.NewValidationError("longitude out of range", nil)
	}

	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	nuts.L.Infof("[StationService] Creating station %s at (%f, %f)",
		station.Name, station.Longitude, station.Latitude)
	return s.Stations.Create(ctx, station)
}

// UpdateStation updates a station the caller can see
func (s *WellnessService) UpdateStation(ctx context.Context, station *models.Station) error {
	user, scope, err := s.authorize(ctx, auth.ResourceStations, auth.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.verifyStationAccess(ctx, user, scope, station.ID); err != nil {
		return err
	}

	if station.Latitude < -90 || station.Latitude > 90 {
		return errors.NewValidationError("latitude out of range", nil)
	}
	if station.Longitude < -180 || station.Longitude > 180 {
		return errors.NewValidationError("longitude out of range", nil)
	}

	station.UpdatedAt = time.Now()
	return s.Stations.Update(ctx, station)
}

// DeleteStation removes a station with its readings and ranch
// associations in one transaction
func (s *WellnessService) DeleteStation(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceStations, auth.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.verifyStationAccess(ctx, user, scope, id); err != nil {
		return err
	}

	tx, err := s.Stations.BeginTx(ctx)
	if err != nil {
		return errors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.StationData.DeleteByStation(ctx, id, tx); err != nil {
		return err
	}
	if err := s.Stations.DeleteAssociationsByStation(ctx, id, tx); err != nil {
		return err
	}
	if err := s.Stations.Delete(ctx, id, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit transaction", err)
	}

	nuts.L.Infof("[StationService] Deleted station %d", id)
	return nil
}

// AssociateStationRanch links a station to a ranch the caller has access to
func (s *WellnessService) AssociateStationRanch(ctx context.Context, stationID, ranchID int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceStations, auth.ActionWrite)
	if err != nil {
		return err
	}

	if _, err := s.Stations.Get(ctx, stationID); err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, ranchID); err != nil {
		return err
	}

	return s.Stations.Associate(ctx, stationID, ranchID)
}

// GetStationLocation returns the station position as a GeoJSON point
// feature
func (s *WellnessService) GetStationLocation(ctx context.Context, stationID int64) (*geo.Feature, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceStations, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if err := s.verifyStationAccess(ctx, user, scope, stationID); err != nil {
		return nil, err
	}

	station, err := s.Stations.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}

	feature := geo.NewPointFeature(
		geo.Position{Longitude: station.Longitude, Latitude: station.Latitude},
		map[string]interface{}{
			"station_id": station.ID,
			"name":       station.Name,
		},
	)
	return &feature, nil
}

// ListStationData returns readings for one station, time-filtered
func (s *WellnessService) ListStationData(ctx context.Context, stationID int64, filter models.RangeFilter) ([]models.StationReading, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceStationData, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if err := s.verifyStationAccess(ctx, user, scope, stationID); err != nil {
		return nil, err
	}

	return s.StationData.ListByStation(ctx, stationID, filter)
}

// RecordStationReading stores one measurement. A zero timestamp defaults
// to the submission time.
func (s *WellnessService) RecordStationReading(ctx context.Context, reading *models.StationReading) error {
	user, scope, err := s.authorize(ctx, auth.ResourceStationData, auth.ActionWrite)
	if err != nil {
		return err
	}

	if reading.StationID <= 0 {
		return errors.NewValidationError("station_id is required", nil)
	}

	if err := s.verifyStationAccess(ctx, user, scope, reading.StationID); err != nil {
		return err
	}

	now := time.Now()
	if reading.Timestamp.IsZero() {
		reading.Timestamp = now
	}
	reading.CreatedAt = now

	return s.StationData.InsertReading(ctx, reading)
}

// verifyStationAccess checks the caller can see the station. ScopeAll only
// verifies existence; ScopeOwned requires the station to serve one of the
// caller's ranches.
func (s *WellnessService) verifyStationAccess(ctx context.Context, user *auth.UserContext, scope auth.Scope, stationID int64) error {
	if scope == auth.ScopeAll {
		_, err := s.Stations.Get(ctx, stationID)
		return err
	}

	stations, err := s.Stations.ListByUser(ctx, user.UserID)
	if err != nil {
		return err
	}
	for _, station := range stations {
		if station.StationID == stationID {
			return nil
		}
	}
	return errors.NewAuthorizationError("station does not serve any of the caller's ranches", nil)
}
