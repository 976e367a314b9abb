// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	database.Repository
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, username, role string) error
	Delete(ctx context.Context, id int64) error
}

// RanchRepository defines the interface for ranch data operations
type RanchRepository interface {
	database.Repository
	Create(ctx context.Context, ranch *models.Ranch) error
	Get(ctx context.Context, id int64) (*models.Ranch, error)
	Update(ctx context.Context, ranch *models.Ranch) error
	Delete(ctx context.Context, id int64, tx database.Transaction) error
	ListAll(ctx context.Context) ([]*models.Ranch, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Ranch, error)
	Associate(ctx context.Context, userID, ranchID int64) error
	DeleteAssociationsByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error
}

// AnimalRepository defines the interface for animal data operations
type AnimalRepository interface {
	database.Repository
	Create(ctx context.Context, animal *models.Animal) error
	Get(ctx context.Context, id int64) (*models.Animal, error)
	Update(ctx context.Context, animal *models.Animal) error
	Delete(ctx context.Context, id int64, tx database.Transaction) error
	ListAll(ctx context.Context) ([]*models.AnimalInfo, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.AnimalInfo, error)
	ListByRanch(ctx context.Context, ranchID int64) ([]*models.Animal, error)
	DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error
}

// HealthRecordRepository defines the interface for health check records
type HealthRecordRepository interface {
	database.Repository
	Create(ctx context.Context, record *models.HealthRecord) error
	Get(ctx context.Context, id int64) (*models.HealthRecord, error)
	Delete(ctx context.Context, id int64) error
	ListByAnimal(ctx context.Context, animalID int64, filter models.RangeFilter) ([]models.HealthRecord, error)
	DeleteByAnimal(ctx context.Context, animalID int64, tx database.Transaction) error
}

// StationRepository defines the interface for weather station operations
type StationRepository interface {
	database.Repository
	Create(ctx context.Context, station *models.Station) error
	Get(ctx context.Context, id int64) (*models.Station, error)
	Update(ctx context.Context, station *models.Station) error
	Delete(ctx context.Context, id int64, tx database.Transaction) error
	ListAll(ctx context.Context) ([]*models.Station, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.StationInfo, error)
	Associate(ctx context.Context, stationID, ranchID int64) error
	DeleteAssociationsByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error
	DeleteAssociationsByStation(ctx context.Context, stationID int64, tx database.Transaction) error
}

// StationDataRepository defines the interface for station measurements
type StationDataRepository interface {
	database.Repository
	InsertReading(ctx context.Context, reading *models.StationReading) error
	ListByStation(ctx context.Context, stationID int64, filter models.RangeFilter) ([]models.StationReading, error)
	DeleteByStation(ctx context.Context, stationID int64, tx database.Transaction) error
}

// CollarRepository defines the interface for GPS collar operations
type CollarRepository interface {
	database.Repository
	Create(ctx context.Context, collar *models.Collar) error
	Get(ctx context.Context, id int64) (*models.Collar, error)
	Update(ctx context.Context, collar *models.Collar) error
	Delete(ctx context.Context, id int64, tx database.Transaction) error
	ListAll(ctx context.Context) ([]*models.CollarInfo, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.CollarInfo, error)
	ListUncollaredByUser(ctx context.Context, userID int64) ([]*models.UncollaredAnimalInfo, error)
	ListUncollaredAll(ctx context.Context) ([]*models.UncollaredAnimalInfo, error)
	ListByAnimal(ctx context.Context, animalID int64) ([]*models.Collar, error)
	DeleteByAnimal(ctx context.Context, animalID int64, tx database.Transaction) error
}

// CollarDataRepository defines the interface for collar telemetry pings
type CollarDataRepository interface {
	database.Repository
	Insert(ctx context.Context, data *models.CollarGPSData) error
	InsertBatch(ctx context.Context, batch []*models.CollarGPSData) error
	ListByCollar(ctx context.Context, collarID int64, filter models.RangeFilter) ([]models.CollarGPSData, error)
	DeleteByCollar(ctx context.Context, collarID int64, tx database.Transaction) error
}

// DairyMilkRepository defines the interface for milk records
type DairyMilkRepository interface {
	database.Repository
	Create(ctx context.Context, milk *models.DairyMilk) error
	Get(ctx context.Context, id int64) (*models.DairyMilk, error)
	Update(ctx context.Context, milk *models.DairyMilk) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, filter models.RangeFilter) ([]*models.DairyMilkInfo, error)
	ListByUser(ctx context.Context, userID int64, filter models.RangeFilter) ([]*models.DairyMilkInfo, error)
	DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error
}

// WellIndexRepository defines the interface for wellbeing index rows
type WellIndexRepository interface {
	database.Repository
	Create(ctx context.Context, index *models.WellIndex) error
	Get(ctx context.Context, id int64) (*models.WellIndex, error)
	Update(ctx context.Context, index *models.WellIndex) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, filter models.RangeFilter) ([]*models.WellIndexInfo, error)
	ListByUser(ctx context.Context, userID int64, filter models.RangeFilter) ([]*models.WellIndexInfo, error)
	DeleteByRanch(ctx context.Context, ranchID int64, tx database.Transaction) error
}
