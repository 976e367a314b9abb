// FilePath: internal/models/models.milk.go
package models

import "time"

// DairyMilk is one quality/quantity record for a ranch
type DairyMilk struct {
	ID           int64     `json:"id" db:"id"`
	RanchID      int64     `json:"ranch_id" db:"ranch_id"`
	MilkQuality  float64   `json:"milk_quality" db:"milk_quality"`
	MilkQuantity float64   `json:"milk_quantity" db:"milk_quantity"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DairyMilkInfo is the joined listing row returned by GET /milk
type DairyMilkInfo struct {
	RanchName    string    `json:"ranch_name" db:"ranch_name"`
	DairyMilkID  int64     `json:"dairy_milk_id" db:"dairy_milk_id"`
	MilkQuality  float64   `json:"milk_quality" db:"milk_quality"`
	MilkQuantity float64   `json:"milk_quantity" db:"milk_quantity"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
