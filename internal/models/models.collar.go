// FilePath: internal/models/models.collar.go
package models

import "time"

// Collar is a tracking device assigned to one animal
type Collar struct {
	ID        int64     `json:"id" db:"id"`
	AnimalID  int64     `json:"animal_id" db:"animal_id"`
	DevEUI    string    `json:"dev_eui" db:"dev_eui"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CollarInfo is the joined listing row returned by GET /collar
type CollarInfo struct {
	AnimalTag    string    `json:"animal_tag" db:"animal_tag"`
	RanchName    string    `json:"ranch_name" db:"ranch_name"`
	AnimalID     int64     `json:"animal_id" db:"animal_id"`
	CollarID     int64     `json:"collar_id" db:"collar_id"`
	CollarDevEUI string    `json:"collar_dev_eui" db:"collar_dev_eui"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UncollaredAnimalInfo is returned by GET /collar/without_collar
type UncollaredAnimalInfo struct {
	AnimalID   int64  `json:"animal_id" db:"animal_id"`
	AnimalTag  string `json:"animal_tag" db:"animal_tag"`
	RanchName  string `json:"ranch_name" db:"ranch_name"`
	AnimalType string `json:"animal_type" db:"animal_type"`
}

// CollarGPSData is one telemetry ping from a collar. Coordinates are
// stored as geometry(Point, 4326) with x=longitude, y=latitude.
type CollarGPSData struct {
	ID                int64     `json:"id" db:"id"`
	CollarID          int64     `json:"collar_id" db:"collar_id"`
	Latitude          float64   `json:"latitude" db:"latitude"`
	Longitude         float64   `json:"longitude" db:"longitude"`
	Temperature       float64   `json:"temperature" db:"temperature"`
	BatteryPercentage float64   `json:"battery_percentage" db:"battery_percentage"`
	Altitude          float64   `json:"altitude" db:"altitude"`
	Humidity          float64   `json:"humidity" db:"humidity"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
