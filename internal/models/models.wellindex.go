// FilePath: internal/models/models.wellindex.go
package models

import "time"

// WellIndex stores an externally computed wellbeing score for a ranch.
// This system only stores and serves the value.
type WellIndex struct {
	ID         int64     `json:"id" db:"id"`
	RanchID    int64     `json:"ranch_id" db:"ranch_id"`
	IndexValue float64   `json:"index_value" db:"index_value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// WellIndexInfo is the joined listing row returned by GET /wellindex
type WellIndexInfo struct {
	RanchName  string    `json:"ranch_name" db:"ranch_name"`
	IndexValue float64   `json:"index_value" db:"index_value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
