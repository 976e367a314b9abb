package wellness

import (
	"context"
	"strings"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ListAnimals returns the joined animal rows visible to the caller
func (s *WellnessService) ListAnimals(ctx context.Context) ([]*models.AnimalInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceAnimals, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		return s.Animals.ListAll(ctx)
	}
	return s.Animals.ListByUser(ctx, user.UserID)
}

// CreateAnimal registers a new animal on one of the caller's ranches.
// Newly registered animals are always alive regardless of the payload.
func (s *WellnessService) CreateAnimal(ctx context.Context, animal *models.Animal) error {
	user, scope, err := s.authorize(ctx, auth.ResourceAnimals, auth.ActionWrite)
	if err != nil {
		return err
	}

	if animal.RanchID <= 0 {
		return errors.NewValidationError("ranch_id is required", nil)
	}
	if strings.TrimSpace(animal.Tag) == "" {
		return errors.NewValidationError("animal tag is required", nil)
	}
	if animal.Age < 0 {
		return errors.NewValidationError("animal age must not be negative", nil)
	}

	if err := s.verifyRanchAccess(ctx, user, scope, animal.RanchID); err != nil {
		return err
	}

	now := time.Now()
	animal.Status = true
	animal.CreatedAt = now
	animal.UpdatedAt = now

	nuts.L.Infof("[AnimalService] Creating animal %s on ranch %d", animal.Tag, animal.RanchID)
	return s.Animals.Create(ctx, animal)
}

// UpdateAnimal updates an animal on a ranch the caller has access to. The
// ranch assignment itself cannot move to a foreign ranch.
func (s *WellnessService) UpdateAnimal(ctx context.Context, animal *models.Animal) error {
	user, scope, err := s.authorize(ctx, auth.ResourceAnimals, auth.ActionWrite)
	if err != nil {
		return err
	}

	existing, err := s.Animals.Get(ctx, animal.ID)
	if err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, existing.RanchID); err != nil {
		return err
	}
	if animal.RanchID != 0 && animal.RanchID != existing.RanchID {
		if err := s.verifyRanchAccess(ctx, user, scope, animal.RanchID); err != nil {
			return err
		}
	}
	if animal.RanchID == 0 {
		animal.RanchID = existing.RanchID
	}

	animal.UpdatedAt = time.Now()
	return s.Animals.Update(ctx, animal)
}

// DeleteAnimal removes an animal and cascades through collars, telemetry
// and health records
func (s *WellnessService) DeleteAnimal(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceAnimals, auth.ActionWrite)
	if err != nil {
		return err
	}

	if _, err := s.verifyAnimalAccess(ctx, user, scope, id); err != nil {
		return err
	}

	nuts.L.Infof("[AnimalService] Deleting animal %d", id)
	return s.Cleanup.DeleteAnimal(ctx, id)
}

// ListHealthRecords returns health checks for one animal, time-filtered
func (s *WellnessService) ListHealthRecords(ctx context.Context, animalID int64, filter models.RangeFilter) ([]models.HealthRecord, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceHealthRecords, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if _, err := s.verifyAnimalAccess(ctx, user, scope, animalID); err != nil {
		return nil, err
	}

	return s.HealthRecords.ListByAnimal(ctx, animalID, filter)
}

// CreateHealthRecord records a health check for an animal the caller has
// access to. A zero RecordedAt defaults to the submission time.
func (s *WellnessService) CreateHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	user, scope, err := s.authorize(ctx, auth.ResourceHealthRecords, auth.ActionWrite)
	if err != nil {
		return err
	}

	if record.AnimalID <= 0 {
		return errors.NewValidationError("animal_id is required", nil)
	}

	if _, err := s.verifyAnimalAccess(ctx, user, scope, record.AnimalID); err != nil {
		return err
	}

	now := time.Now()
	if record.RecordedAt.IsZero() {
		record.RecordedAt = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	return s.HealthRecords.Create(ctx, record)
}

// DeleteHealthRecord removes a single health check entry for an animal
// the caller has access to
func (s *WellnessService) DeleteHealthRecord(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceHealthRecords, auth.ActionWrite)
	if err != nil {
		return err
	}

	record, err := s.HealthRecords.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.verifyAnimalAccess(ctx, user, scope, record.AnimalID); err != nil {
		return err
	}

	return s.HealthRecords.Delete(ctx, id)
}
