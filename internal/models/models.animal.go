// FilePath: internal/models/models.animal.go
package models

import "time"

// Animal belongs to one ranch. Status is a liveness flag:
// false = dead, true = alive.
type Animal struct {
	ID        int64     `json:"id" db:"id"`
	RanchID   int64     `json:"ranch_id" db:"ranch_id"`
	Tag       string    `json:"tag" db:"tag"`
	Type      string    `json:"type" db:"type"`
	Age       int       `json:"age" db:"age"`
	Status    bool      `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AnimalInfo is the joined listing row returned by GET /animal
type AnimalInfo struct {
	RanchName    string    `json:"ranch_name" db:"ranch_name"`
	AnimalID     int64     `json:"animal_id" db:"animal_id"`
	AnimalTag    string    `json:"animal_tag" db:"animal_tag"`
	AnimalAge    int       `json:"animal_age" db:"animal_age"`
	AnimalType   string    `json:"animal_type" db:"animal_type"`
	AnimalStatus bool      `json:"animal_status" db:"animal_status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HealthRecord captures one health check for an animal. The boolean flags
// are the fixed condition set recorded in the field; cmt_a/cmt_d are the
// California Mastitis Test results. RecordedAt is the examination time,
// distinct from the row timestamps.
type HealthRecord struct {
	ID                    int64     `json:"id" db:"id"`
	AnimalID              int64     `json:"animal_id" db:"animal_id"`
	HeadInjury            bool      `json:"head_injury" db:"head_injury"`
	SkinConditions        bool      `json:"skin_conditions" db:"skin_conditions"`
	Abscess               bool      `json:"abscess" db:"abscess"`
	Arthritis             bool      `json:"arthritis" db:"arthritis"`
	SwollenHooves         bool      `json:"swollen_hooves" db:"swollen_hooves"`
	Mastitis              bool      `json:"mastitis" db:"mastitis"`
	Fibrosis              bool      `json:"fibrosis" db:"fibrosis"`
	Asymmetry             bool      `json:"asymmetry" db:"asymmetry"`
	MammarySkinConditions string    `json:"mammary_skin_conditions" db:"mammary_skin_conditions"`
	CmtA                  bool      `json:"cmt_a" db:"cmt_a"`
	CmtD                  bool      `json:"cmt_d" db:"cmt_d"`
	RecordedAt            time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}
