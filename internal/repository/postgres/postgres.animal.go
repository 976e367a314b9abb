package postgres

import (
	"context"
	"database/sql"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type AnimalRepo struct {
	PostgresBaseRepo
}

func NewAnimalRepository(db database.DB) *AnimalRepo {
	repo := &PostgresBaseRepo{db: db}
	return &AnimalRepo{PostgresBaseRepo: *repo}
}

// animalInfoColumns is shared by the scoped and unscoped listing queries
const animalInfoColumns = `
	r.name AS ranch_name,
	a.id AS animal_id,
	a.tag AS animal_tag,
	a.age AS animal_age,
	a.type AS animal_type,
	a.status AS animal_status,
	a.created_at AS created_at,
	a.updated_at AS updated_at`

func (r *AnimalRepo) Create(ctx context.Context, animal *models.Animal) error {
	query := `
		INSERT INTO animals (ranch_id, tag, type, age, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.GetDB().GetContext(ctx, &animal.ID, query,
		animal.RanchID, animal.Tag, animal.Type, animal.Age, animal.Status,
		animal.CreatedAt, animal.UpdatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to create animal", err)
	}
	return nil
}

func (r *AnimalRepo) Get(ctx context.Context, id int64) (*models.Animal, error) {
	animal := &models.Animal{}
	query := `SELECT * FROM animals WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, animal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("animal not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get animal", err)
	}
	return animal, nil
}

func (r *AnimalRepo) Update(ctx context.Context, animal *models.Animal) error {
	query := `
		UPDATE animals SET
			ranch_id = :ranch_id,
			tag = :tag,
			type = :type,
			age = :age,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, animal)
	if err != nil {
		return errors.NewDatabaseError("failed to update animal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("animal not found", nil)
	}
	return nil
}

// Delete runs on the cascade transaction that removed the animal's
// collars and records.
func (r *AnimalRepo) Delete(ctx context.Context, id int64, tx database.Transaction) error {
	query := `DELETE FROM animals WHERE id = $1`

	result, err := r.execOn(ctx, tx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete animal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("animal not found", nil)
	}
	return nil
}

func (r *AnimalRepo) ListAll(ctx context.Context) ([]*models.AnimalInfo, error) {
	animals := []*models.AnimalInfo{}
	query := `
		SELECT ` + animalInfoColumns + `
		FROM animals a
		JOIN ranches r ON r.id = a.ranch_id
		ORDER BY a.created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &animals, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals", err)
	}
	return animals, nil
}

func (r *AnimalRepo) ListByUser(ctx context.Context, userID int64) ([]*models.AnimalInfo, error) {
	animals := []*models.AnimalInfo{}
	query := `
		SELECT ` + animalInfoColumns + `
		FROM user_ranches ur
		JOIN ranches r ON ur.ranch_id = r.id
		JOIN animals a ON r.id = a.ranch_id
		WHERE ur.user_id = $1
		ORDER BY a.created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &animals, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals", err)
	}
	return animals, nil
}

func (r *AnimalRepo) ListByRanch(ctx context.Context, ranchID int64) ([]*models.Animal, error) {
	animals := []*models.Animal{}
	query := `SELECT * FROM animals WHERE ranch_id = $1`

	err := r.db.GetDB().SelectContext(ctx, &animals, query, ranchID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals by ranch", err)
	}
	return animals, nil
}

func (r *AnimalRepo) DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error {
	query := `DELETE FROM animals WHERE ranch_id = $1`

	_, err := r.execOn(ctx, tx, query, ranchID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete animals by ranch", err)
	}
	return nil
}
