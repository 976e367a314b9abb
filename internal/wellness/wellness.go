package wellness

import (
	"context"

	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/cleanup"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/repository"
)

// WellnessService contains all repositories and service-wide dependencies
type WellnessService struct {
	Users         repository.UserRepository
	Ranches       repository.RanchRepository
	Animals       repository.AnimalRepository
	HealthRecords repository.HealthRecordRepository
	Stations      repository.StationRepository
	StationData   repository.StationDataRepository
	Collars       repository.CollarRepository
	CollarData    repository.CollarDataRepository
	Milk          repository.DairyMilkRepository
	WellIndexes   repository.WellIndexRepository
	Auth          *auth.Service
	Cleanup       *cleanup.CleanupService
}

// New creates a new WellnessService instance
func New(
	users repository.UserRepository,
	ranches repository.RanchRepository,
	animals repository.AnimalRepository,
	healthRecords repository.HealthRecordRepository,
	stations repository.StationRepository,
	stationData repository.StationDataRepository,
	collars repository.CollarRepository,
	collarData repository.CollarDataRepository,
	milk repository.DairyMilkRepository,
	wellIndexes repository.WellIndexRepository,
	authService *auth.Service,
) *WellnessService {
	svc := &WellnessService{
		Users:         users,
		Ranches:       ranches,
		Animals:       animals,
		HealthRecords: healthRecords,
		Stations:      stations,
		StationData:   stationData,
		Collars:       collars,
		CollarData:    collarData,
		Milk:          milk,
		WellIndexes:   wellIndexes,
		Auth:          authService,
	}
	svc.Cleanup = cleanup.New(ranches, animals, healthRecords, stations,
		collars, collarData, milk, wellIndexes)
	return svc
}

// Validate checks if all required dependencies are initialized
func (s *WellnessService) Validate() error {
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Ranches == nil {
		return ErrMissingRepository("ranches")
	}
	if s.Animals == nil {
		return ErrMissingRepository("animals")
	}
	if s.HealthRecords == nil {
		return ErrMissingRepository("healthRecords")
	}
	if s.Stations == nil {
		return ErrMissingRepository("stations")
	}
	if s.StationData == nil {
		return ErrMissingRepository("stationData")
	}
	if s.Collars == nil {
		return ErrMissingRepository("collars")
	}
	if s.CollarData == nil {
		return ErrMissingRepository("collarData")
	}
	if s.Milk == nil {
		return ErrMissingRepository("milk")
	}
	if s.WellIndexes == nil {
		return ErrMissingRepository("wellIndexes")
	}
	if s.Auth == nil {
		return errors.NewInternalError("missing auth service", nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// authorize resolves the caller from the context and evaluates the policy
// table. ScopeNone, and a missing caller, both come back as authorization
// failures so every denied route answers 403 uniformly.
func (s *WellnessService) authorize(ctx context.Context, resource string, action auth.Action) (*auth.UserContext, auth.Scope, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, auth.ScopeNone, errors.NewAuthError("could not validate user", nil)
	}

	scope := auth.Evaluate(user.Role, resource, action)
	if scope == auth.ScopeNone {
		return nil, auth.ScopeNone, errors.NewAuthorizationError("operation not permitted for role "+user.Role, nil)
	}
	return user, scope, nil
}

// verifyRanchAccess checks that the caller may touch the given ranch.
// ScopeAll bypasses the check; ScopeOwned requires a user_ranches edge.
func (s *WellnessService) verifyRanchAccess(ctx context.Context, user *auth.UserContext, scope auth.Scope, ranchID int64) error {
	if scope == auth.ScopeAll {
		if _, err := s.Ranches.Get(ctx, ranchID); err != nil {
			return err
		}
		return nil
	}

	ranches, err := s.Ranches.ListByUser(ctx, user.UserID)
	if err != nil {
		return err
	}
	for _, ranch := range ranches {
		if ranch.ID == ranchID {
			return nil
		}
	}
	return errors.NewAuthorizationError("ranch does not belong to caller", nil)
}

// verifyAnimalAccess resolves the animal's ranch and checks ranch access.
// Returns the animal so callers avoid a second lookup.
func (s *WellnessService) verifyAnimalAccess(ctx context.Context, user *auth.UserContext, scope auth.Scope, animalID int64) (*animalAccess, error) {
	animal, err := s.Animals.Get(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if err := s.verifyRanchAccess(ctx, user, scope, animal.RanchID); err != nil {
		return nil, err
	}
	return &animalAccess{AnimalID: animal.ID, RanchID: animal.RanchID}, nil
}

// verifyCollarAccess resolves the collar's animal and checks access
// through the ranch chain.
func (s *WellnessService) verifyCollarAccess(ctx context.Context, user *auth.UserContext, scope auth.Scope, collarID int64) error {
	collar, err := s.Collars.Get(ctx, collarID)
	if err != nil {
		return err
	}
	_, err = s.verifyAnimalAccess(ctx, user, scope, collar.AnimalID)
	return err
}

type animalAccess struct {
	AnimalID int64
	RanchID  int64
}
