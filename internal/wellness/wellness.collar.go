package wellness

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/geo"
	"github.com/projectwellness/wellness-hub/internal/kml"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// KMLIngestSummary reports the outcome of a track upload
type KMLIngestSummary struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ListCollars returns the joined collar rows visible to the caller
func (s *WellnessService) ListCollars(ctx context.Context) ([]*models.CollarInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceCollars, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		return s.Collars.ListAll(ctx)
	}
	return s.Collars.ListByUser(ctx, user.UserID)
}

// ListUncollaredAnimals returns animals lacking a collar. An empty result
// is reported as not found, so the caller can distinguish "nothing to
// collar" from an empty herd listing.
func (s *WellnessService) ListUncollaredAnimals(ctx context.Context) ([]*models.UncollaredAnimalInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceCollars, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	var animals []*models.UncollaredAnimalInfo
	if scope == auth.ScopeAll {
		animals, err = s.Collars.ListUncollaredAll(ctx)
	} else {
		animals, err = s.Collars.ListUncollaredByUser(ctx, user.UserID)
	}
	if err != nil {
		return nil, err
	}

	if len(animals) == 0 {
		return nil, errors.NewNotFoundError("no animals without collars", nil)
	}
	return animals, nil
}

// CreateCollar assigns a tracking collar to an animal the caller has
// access to
func (s *WellnessService) CreateCollar(ctx context.Context, collar *models.Collar) error {
	user, scope, err := s.authorize(ctx, auth.ResourceCollars, auth.ActionWrite)
	if err != nil {
		return err
	}

	if collar.AnimalID <= 0 {
		return errors.NewValidationError("animal_id is required", nil)
	}
	if strings.TrimSpace(collar.DevEUI) == "" {
		return errors.NewValidationError("dev_eui is required", nil)
	}

	if _, err := s.verifyAnimalAccess(ctx, user, scope, collar.AnimalID); err != nil {
		return err
	}

	now := time.Now()
	collar.CreatedAt = now
	collar.UpdatedAt = now

	nuts.L.Infof("[CollarService] Creating collar %s for animal %d", collar.DevEUI, collar.AnimalID)
	return s.Collars.Create(ctx, collar)
}

// UpdateCollar updates a collar the caller has access to
func (s *WellnessService) UpdateCollar(ctx context.Context, collar *models.Collar) error {
	user, scope, err := s.authorize(ctx, auth.ResourceCollars, auth.ActionWrite)
	if err != nil {
		return err
	}

	existing, err := s.Collars.Get(ctx, collar.ID)
	if err != nil {
		return err
	}
	if _, err := s.verifyAnimalAccess(ctx, user, scope, existing.AnimalID); err != nil {
		return err
	}
	if collar.AnimalID != 0 && collar.AnimalID != existing.AnimalID {
		if _, err := s.verifyAnimalAccess(ctx, user, scope, collar.AnimalID); err != nil {
			return err
		}
	}
	if collar.AnimalID == 0 {
		collar.AnimalID = existing.AnimalID
	}

	collar.UpdatedAt = time.Now()
	return s.Collars.Update(ctx, collar)
}

// DeleteCollar removes a collar and its telemetry
func (s *WellnessService) DeleteCollar(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceCollars, auth.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.verifyCollarAccess(ctx, user, scope, id); err != nil {
		return err
	}

	nuts.L.Infof("[CollarService] Deleting collar %d", id)
	return s.Cleanup.DeleteCollar(ctx, id)
}

// RecordCollarPing stores one telemetry ping. A zero timestamp defaults
// to the submission time.
func (s *WellnessService) RecordCollarPing(ctx context.Context, data *models.CollarGPSData) error {
	user, scope, err := s.authorize(ctx, auth.ResourceCollarData, auth.ActionWrite)
	if err != nil {
		return err
	}

	if data.CollarID <= 0 {
		return errors.NewValidationError("collar_id is required", nil)
	}
	if err := validateCoordinates(data.Longitude, data.Latitude); err != nil {
		return err
	}

	if err := s.verifyCollarAccess(ctx, user, scope, data.CollarID); err != nil {
		return err
	}

	now := time.Now()
	if data.Timestamp.IsZero() {
		data.Timestamp = now
	}
	data.CreatedAt = now
	data.UpdatedAt = now

	return s.CollarData.Insert(ctx, data)
}

// ListCollarData returns the pings of one collar as a GeoJSON
// FeatureCollection of points
func (s *WellnessService) ListCollarData(ctx context.Context, collarID int64, filter models.RangeFilter) (*geo.FeatureCollection, error) {
	pings, err := s.collarPings(ctx, collarID, filter)
	if err != nil {
		return nil, err
	}

	features := make([]geo.Feature, 0, len(pings))
	for _, ping := range pings {
		features = append(features, geo.NewPointFeature(
			geo.Position{Longitude: ping.Longitude, Latitude: ping.Latitude},
			map[string]interface{}{
				"collar_id":          ping.CollarID,
				"temperature":        ping.Temperature,
				"battery_percentage": ping.BatteryPercentage,
				"altitude":           ping.Altitude,
				"humidity":           ping.Humidity,
				"timestamp":          ping.Timestamp,
			},
		))
	}

	collection := geo.NewFeatureCollection(features)
	return &collection, nil
}

// GetCollarRoute returns the time-ordered pings of one collar as a single
// GeoJSON LineString
func (s *WellnessService) GetCollarRoute(ctx context.Context, collarID int64, filter models.RangeFilter) (*geo.FeatureCollection, error) {
	pings, err := s.collarPings(ctx, collarID, filter)
	if err != nil {
		return nil, err
	}

	positions := make([]geo.Position, 0, len(pings))
	for _, ping := range pings {
		positions = append(positions, geo.Position{
			Longitude: ping.Longitude,
			Latitude:  ping.Latitude,
		})
	}

	route := geo.NewRouteFeatureCollection(positions, map[string]interface{}{
		"collar_id": collarID,
		"points":    len(positions),
	})
	return &route, nil
}

// IngestKML parses a KML track and stores its placemarks as pings for the
// collar in one batch. Malformed placemarks are skipped, the rest of the
// batch is inserted.
func (s *WellnessService) IngestKML(ctx context.Context, collarID int64, r io.Reader) (*KMLIngestSummary, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceCollarData, auth.ActionWrite)
	if err != nil {
		return nil, err
	}

	if collarID <= 0 {
		return nil, errors.NewValidationError("collar_id is required", nil)
	}
	if err := s.verifyCollarAccess(ctx, user, scope, collarID); err != nil {
		return nil, err
	}

	placemarks, skipped, err := kml.Parse(r)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	batch := make([]*models.CollarGPSData, 0, len(placemarks))
	for _, placemark := range placemarks {
		batch = append(batch, &models.CollarGPSData{
			CollarID:  collarID,
			Longitude: placemark.Longitude,
			Latitude:  placemark.Latitude,
			Altitude:  placemark.Altitude,
			Timestamp: placemark.Timestamp,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.CollarData.InsertBatch(ctx, batch); err != nil {
		return nil, err
	}

	nuts.L.Infof("[CollarService] Ingested %d track points for collar %d (%d skipped)",
		len(batch), collarID, skipped)
	return &KMLIngestSummary{Inserted: len(batch), Skipped: skipped}, nil
}

func (s *WellnessService) collarPings(ctx context.Context, collarID int64, filter models.RangeFilter) ([]models.CollarGPSData, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceCollarData, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if collarID <= 0 {
		return nil, errors.NewValidationError("collar_id is required", nil)
	}
	if err := s.verifyCollarAccess(ctx, user, scope, collarID); err != nil {
		return nil, err
	}

	return s.CollarData.ListByCollar(ctx, collarID, filter)
}

func validateCoordinates(longitude, latitude float64) error {
	if latitude < -90 || latitude > 90 {
		return errors.NewValidationError("latitude out of range", nil)
	}
	if longitude < -180 || longitude > 180 {
		return errors.NewValidationError("longitude out of range", nil)
	}
	return nil
}
