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

// ListRanches returns the ranches visible to the caller: every ranch for
// admin, the caller's associated ranches otherwise.
func (s *WellnessService) ListRanches(ctx context.Context) ([]*models.Ranch, error) {
	user, scope, err := s.authorize(ctx, auth.ResourceRanches, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	if scope == auth.ScopeAll {
		return s.Ranches.ListAll(ctx)
	}
	return s.Ranches.ListByUser(ctx, user.UserID)
}

// CreateRanch creates a ranch and associates it with the caller
func (s *WellnessService) CreateRanch(ctx context.Context, ranch *models.Ranch) error {
	user, _, err := s.authorize(ctx, auth.ResourceRanches, auth.ActionWrite)
	if err != nil {
		return err
	}

	if strings.TrimSpace(ranch.Name) == "" {
		return errors.NewValidationError("ranch name is required", nil)
	}
	if ranch.HerdSize < 0 {
		return errors.NewValidationError("herd size must not be negative", nil)
	}

	now := time.Now()
	ranch.CreatedAt = now
	ranch.UpdatedAt = now

	if err := s.Ranches.Create(ctx, ranch); err != nil {
		return err
	}

	if err := s.Ranches.Associate(ctx, user.UserID, ranch.ID); err != nil {
		return err
	}

	nuts.L.Infof("[RanchService] Created ranch %d (%s) for user %d", ranch.ID, ranch.Name, user.UserID)
	return nil
}

// UpdateRanch updates a ranch the caller has access to
func (s *WellnessService) UpdateRanch(ctx context.Context, ranch *models.Ranch) error {
	user, scope, err := s.authorize(ctx, auth.ResourceRanches, auth.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.verifyRanchAccess(ctx, user, scope, ranch.ID); err != nil {
		return err
	}

	ranch.UpdatedAt = time.Now()
	return s.Ranches.Update(ctx, ranch)
}

// DeleteRanch removes a ranch and cascades through its dependents
func (s *WellnessService) DeleteRanch(ctx context.Context, id int64) error {
	user, scope, err := s.authorize(ctx, auth.ResourceRanches, auth.ActionWrite)
	if err != nil {
		return err
	}

	if err := s.verifyRanchAccess(ctx, user, scope, id); err != nil {
		return err
	}

	nuts.L.Infof("[RanchService] Deleting ranch %d", id)
	return s.Cleanup.DeleteRanch(ctx, id)
}

// AssociateRanch links an existing ranch to the caller. A ranch already
// claimed by any user is rejected with a conflict.
func (s *WellnessService) AssociateRanch(ctx context.Context, ranchID int64) error {
	user, _, err := s.authorize(ctx, auth.ResourceRanches, auth.ActionWrite)
	if err != nil {
		return err
	}

	if _, err := s.Ranches.Get(ctx, ranchID); err != nil {
		return err
	}

	nuts.L.Infof("[RanchService] Associating ranch %d with user %d", ranchID, user.UserID)
	return s.Ranches.Associate(ctx, user.UserID, ranchID)
}
