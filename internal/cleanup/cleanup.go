package cleanup

import (
	"context"
	"fmt"

	"github.com/projectwellness/wellness-hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of hierarchical data
type CleanupService struct {
	ranches       repository.RanchRepository
	animals       repository.AnimalRepository
	healthRecords repository.HealthRecordRepository
	stations      repository.StationRepository
	collars       repository.CollarRepository
	collarData    repository.CollarDataRepository
	milk          repository.DairyMilkRepository
	wellIndexes   repository.WellIndexRepository
	events        *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	ranches repository.RanchRepository,
	animals repository.AnimalRepository,
	healthRecords repository.HealthRecordRepository,
	stations repository.StationRepository,
	collars repository.CollarRepository,
	collarData repository.CollarDataRepository,
	milk repository.DairyMilkRepository,
	wellIndexes repository.WellIndexRepository,
) *CleanupService {
	return &CleanupService{
		ranches:       ranches,
		animals:       animals,
		healthRecords: healthRecords,
		stations:      stations,
		collars:       collars,
		collarData:    collarData,
		milk:          milk,
		wellIndexes:   wellIndexes,
		events:        nuts.NewEventEmitter(),
	}
}

// DeleteRanch deletes a ranch and everything hanging off it: animal
// telemetry, collars, health records, animals, milk records, wellbeing
// indexes and the user/station association edges.
func (s *CleanupService) DeleteRanch(ctx context.Context, ranchID int64) error {
	tx, err := s.ranches.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	animals, err := s.animals.ListByRanch(ctx, ranchID)
	if err != nil {
		return fmt.Errorf("failed to list animals: %w", err)
	}

	for _, animal := range animals {
		collars, err := s.collars.ListByAnimal(ctx, animal.ID)
		if err != nil {
			return fmt.Errorf("failed to list collars: %w", err)
		}
		for _, collar := range collars {
			if err := s.collarData.DeleteByCollar(ctx, collar.ID, tx); err != nil {
				return fmt.Errorf("failed to delete collar data: %w", err)
			}
		}
		if err := s.collars.DeleteByAnimal(ctx, animal.ID, tx); err != nil {
			return fmt.Errorf("failed to delete collars: %w", err)
		}
		if err := s.healthRecords.DeleteByAnimal(ctx, animal.ID, tx); err != nil {
			return fmt.Errorf("failed to delete health records: %w", err)
		}
		s.events.Emit("animal.deleted", animal.ID)
	}

	if err := s.animals.DeleteByRanch(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete animals: %w", err)
	}

	if err := s.milk.DeleteByRanch(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete milk records: %w", err)
	}

	if err := s.wellIndexes.DeleteByRanch(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete wellbeing indexes: %w", err)
	}

	if err := s.stations.DeleteAssociationsByRanch(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete station associations: %w", err)
	}

	if err := s.ranches.DeleteAssociationsByRanch(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete user associations: %w", err)
	}

	if err := s.ranches.Delete(ctx, ranchID, tx); err != nil {
		return fmt.Errorf("failed to delete ranch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Emit event after successful deletion
	s.events.Emit("ranch.deleted", ranchID)
	return nil
}

// DeleteAnimal deletes an animal, its collars and their pings, and its
// health records
func (s *CleanupService) DeleteAnimal(ctx context.Context, animalID int64) error {
	tx, err := s.animals.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	collars, err := s.collars.ListByAnimal(ctx, animalID)
	if err != nil {
		return fmt.Errorf("failed to list collars: %w", err)
	}
	for _, collar := range collars {
		if err := s.collarData.DeleteByCollar(ctx, collar.ID, tx); err != nil {
			return fmt.Errorf("failed to delete collar data: %w", err)
		}
		s.events.Emit("collar.deleted", collar.ID)
	}

	if err := s.collars.DeleteByAnimal(ctx, animalID, tx); err != nil {
		return fmt.Errorf("failed to delete collars: %w", err)
	}

	if err := s.healthRecords.DeleteByAnimal(ctx, animalID, tx); err != nil {
		return fmt.Errorf("failed to delete health records: %w", err)
	}

	if err := s.animals.Delete(ctx, animalID, tx); err != nil {
		return fmt.Errorf("failed to delete animal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("animal.deleted", animalID)
	return nil
}

// DeleteCollar deletes a collar and its telemetry
func (s *CleanupService) DeleteCollar(ctx context.Context, collarID int64) error {
	tx, err := s.collars.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.collarData.DeleteByCollar(ctx, collarID, tx); err != nil {
		return fmt.Errorf("failed to delete collar data: %w", err)
	}

	if err := s.collars.Delete(ctx, collarID, tx); err != nil {
		return fmt.Errorf("failed to delete collar: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("collar.deleted", collarID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id int64)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(int64); ok {
				handler(id)
			}
		}
	})
}
