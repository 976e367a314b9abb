package wellness

import (
	"context"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ListWellIndexes returns the joined wellbeing rows visible to the caller
func (s *WellnessService) ListWellIndexes(ctx context.Context, filter models.RangeFilter) ([]*models.WellIndexInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceWellIndex, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		return s.WellIndexes.ListAll(ctx, filter)
	}
	return s.WellIndexes.ListByUser(ctx, user.UserID, filter)
}

// CreateWellIndex stores an externally computed wellbeing score for a
// ranch the caller has access to
func (s *WellnessService) CreateWellIndex(ctx context.Context, index *models.WellIndex) error {
	user, scope, err := s.authorize(ctx, auth.ResourceWellIndex, auth.ActionWrite)
	if err != nil {
		return err
	}

	if index.RanchID <= 0 {
		return errors.NewValidationError("ranch_id is required", nil)
	}

	if err := s.verifyRanchAccess(ctx, user, scope, index.RanchID); err != nil {
		return err
	}

	now := time.Now()
	index.CreatedAt = now
	index.UpdatedAt = now

	nuts.L.Infof("[WellIndexService] Recording wellbeing index for ranch %d", index.RanchID)
	return s.WellIndexes.Create(ctx, index)
}

// UpdateWellIndex updates a wellbeing index row on a ranch the caller has
// access to
func (s *WellnessService) UpdateWellIndex(ctx context.Context, index *models.WellIndex) error {
	user, scope, err := s.authorize(ctx, auth.ResourceWellIndex, auth.ActionWrite)
	if err != nil {
		return err
	}

	existing, err := s.WellIndexes.Get(ctx, index.ID)
	if err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, existing.RanchID); err != nil {
		return err
	}

	index.UpdatedAt = time.Now()
	return s.WellIndexes.Update(ctx, index)
}

// DeleteWellIndex removes a wellbeing index row on a ranch the caller has
// access to
func (s *WellnessService) DeleteWellIndex(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceWellIndex, auth.ActionWrite)
	if err != nil {
		return err
	}

	existing, err := s.WellIndexes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, existing.RanchID); err != nil {
		return err
	}

	return s.WellIndexes.Delete(ctx, id)
}
