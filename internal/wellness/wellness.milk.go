package wellness

import (
	"context"
	"time"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ListMilk returns the joined milk rows visible to the caller,
// time-filtered over the record creation time
func (s *WellnessService) ListMilk(ctx context.Context, filter models.RangeFilter) ([]*models.DairyMilkInfo, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceMilk, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		return s.Milk.ListAll(ctx, filter)
	}
	return s.Milk.ListByUser(ctx, user.UserID, filter)
}

// CreateMilk records a quality/quantity entry for a ranch the caller has
// access to
func (s *WellnessService) CreateMilk(ctx context.Context, milk *models.DairyMilk) error {
	user, scope, err := s.authorize(ctx, auth.ResourceMilk, auth.ActionWrite)
	if err != nil {
		return err
	}

	if milk.RanchID <= 0 {
		return errors.NewValidationError("ranch_id is required", nil)
	}
	if milk.MilkQuantity < 0 {
		return errors.NewValidationError("milk quantity must not be negative", nil)
	}

	if err := s.verifyRanchAccess(ctx, user, scope, milk.RanchID); err != nil {
		return err
	}

	now := time.Now()
	milk.CreatedAt = now
	milk.UpdatedAt = now

	nuts.L.Infof("[MilkService] Recording milk entry for ranch %d", milk.RanchID)
	return s.Milk.Create(ctx, milk)
}

// UpdateMilk updates a milk record on a ranch the caller has access to
func (s *WellnessService) UpdateMilk(ctx context.Context, milk *models.DairyMilk) error {
	user, scope, err := s.authorize(ctx, auth.ResourceMilk, auth.ActionWrite)
	if err != nil {
		return err
	}

	if milk.MilkQuantity < 0 {
		return errors.NewValidationError("milk quantity must not be negative", nil)
	}

	existing, err := s.Milk.Get(ctx, milk.ID)
	if err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, existing.RanchID); err != nil {
		return err
	}

	milk.UpdatedAt = time.Now()
	return s.Milk.Update(ctx, milk)
}

// DeleteMilk removes a milk record on a ranch the caller has access to
func (s *WellnessService) DeleteMilk(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceMilk, auth.ActionWrite)
	if err != nil {
		return err
	}

	existing, err := s.Milk.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, existing.RanchID); err != nil {
		return err
	}

	return s.Milk.Delete(ctx, id)
}
