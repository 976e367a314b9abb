// FilePath: internal/models/models.user.go
package models

import "time"

// Roles understood by the policy table. Role strings are compared
// case-sensitively.
const (
	RoleAdmin       = "admin"
	RoleRancher     = "rancher"
	RoleVet         = "vet"
	RoleCheesemaker = "cheesemaker"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash" readxs:"system" writexs:"system"`
	Role         string    `json:"role" db:"role" writexs:"admin,system"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRanch is the ownership edge between a user and a ranch
type UserRanch struct {
	UserID  int64 `json:"user_id" db:"user_id"`
	RanchID int64 `json:"ranch_id" db:"ranch_id"`
}
