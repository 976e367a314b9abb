// FilePath: internal/models/models.ranch.go
package models

import "time"

// Ranch is the tenant/ownership unit; animals, milk records and wellbeing
// indices all hang off a ranch.
type Ranch struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	FarmCode       string    `json:"farm_code" db:"farm_code"`
	PrimarySpecies string    `json:"primary_species" db:"primary_species"`
	HerdSize       int       `json:"herd_size" db:"herd_size"`
	AnnualYield    float64   `json:"annual_yield" db:"annual_yield"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
