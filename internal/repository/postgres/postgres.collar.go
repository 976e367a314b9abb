package postgres

import (
	"context"
	"database/sql"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
)

type CollarRepo struct {
	PostgresBaseRepo
}

func NewCollarRepository(db database.DB) *CollarRepo {
	repo := &PostgresBaseRepo{db: db}
	return &CollarRepo{PostgresBaseRepo: *repo}
}

const collarInfoColumns = `
	a.tag AS animal_tag,
	r.name AS ranch_name,
	c.animal_id AS animal_id,
	c.id AS collar_id,
	c.dev_eui AS collar_dev_eui,
	c.created_at AS created_at,
	c.updated_at AS updated_at`

func (r *CollarRepo) Create(ctx context.Context, collar *models.Collar) error {
	query := `
		INSERT INTO collars (animal_id, dev_eui, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.GetDB().GetContext(ctx, &collar.ID, query,
		collar.AnimalID, collar.DevEUI, collar.CreatedAt, collar.UpdatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to create collar", err)
	}
	return nil
}

func (r *CollarRepo) Get(ctx context.Context, id int64) (*models.Collar, error) {
	collar := &models.Collar{}
	query := `SELECT * FROM collars WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, collar, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("collar not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get collar", err)
	}
	return collar, nil
}

func (r *CollarRepo) Update(ctx context.Context, collar *models.Collar) error {
	query := `
		UPDATE collars SET
			animal_id = :animal_id,
			dev_eui = :dev_eui,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, collar)
	if err != nil {
		return errors.NewDatabaseError("failed to update collar", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("collar not found", nil)
	}
	return nil
}

// Delete runs on the cascade transaction that removed the collar's
// telemetry.
func (r *CollarRepo) Delete(ctx context.Context, id int64, tx database.Transaction) error {
	query := `DELETE FROM collars WHERE id = $1`

	result, err := r.execOn(ctx, tx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete collar", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("collar not found", nil)
	}
	return nil
}

func (r *CollarRepo) ListAll(ctx context.Context) ([]*models.CollarInfo, error) {
	collars := []*models.CollarInfo{}
	query := `
		SELECT ` + collarInfoColumns + `
		FROM collars c
		JOIN animals a ON a.id = c.animal_id
		JOIN ranches r ON r.id = a.ranch_id
		ORDER BY c.created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &collars, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list collars", err)
	}
	return collars, nil
}

func (r *CollarRepo) ListByUser(ctx context.Context, userID int64) ([]*models.CollarInfo, error) {
	collars := []*models.CollarInfo{}
	query := `
		SELECT ` + collarInfoColumns + `
		FROM user_ranches ur
		JOIN ranches r ON ur.ranch_id = r.id
		JOIN animals a ON r.id = a.ranch_id
		JOIN collars c ON a.id = c.animal_id
		WHERE ur.user_id = $1
		ORDER BY c.created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &collars, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list collars", err)
	}
	return collars, nil
}

func (r *CollarRepo) ListUncollaredByUser(ctx context.Context, userID int64) ([]*models.UncollaredAnimalInfo, error) {
	animals := []*models.UncollaredAnimalInfo{}
	query := `
		SELECT
			a.id AS animal_id,
			a.tag AS animal_tag,
			r.name AS ranch_name,
			a.type AS animal_type
		FROM animals a
		JOIN ranches r ON r.id = a.ranch_id
		JOIN user_ranches ur ON ur.ranch_id = r.id
		LEFT JOIN collars c ON a.id = c.animal_id
		WHERE ur.user_id = $1 AND c.id IS NULL`

	err := r.db.GetDB().SelectContext(ctx, &animals, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals without collars", err)
	}
	return animals, nil
}

func (r *CollarRepo) ListUncollaredAll(ctx context.Context) ([]*models.UncollaredAnimalInfo, error) {
	animals := []*models.UncollaredAnimalInfo{}
	query := `
		SELECT
			a.id AS animal_id,
			a.tag AS animal_tag,
			r.name AS ranch_name,
			a.type AS animal_type
		FROM animals a
		JOIN ranches r ON r.id = a.ranch_id
		LEFT JOIN collars c ON a.id = c.animal_id
		WHERE c.id IS NULL`

	err := r.db.GetDB().SelectContext(ctx, &animals, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals without collars", err)
	}
	return animals, nil
}

func (r *CollarRepo) ListByAnimal(ctx context.Context, animalID int64) ([]*models.Collar, error) {
	collars := []*models.Collar{}
	query := `SELECT * FROM collars WHERE animal_id = $1`

	err := r.db.GetDB().SelectContext(ctx, &collars, query, animalID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list collars by animal", err)
	}
	return collars, nil
}

func (r *CollarRepo) DeleteByAnimal(ctx context.Context, animalID int64, tx database.Transaction) error {
	query := `DELETE FROM collars WHERE animal_id = $1`

	_, err := r.execOn(ctx, tx, query, animalID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete collars by animal", err)
	}
	return nil
}
