package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. PasswordHash never serializes.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	DOB          *time.Time `db:"dob" json:"dob,omitempty"`
	Gender       *string    `db:"gender" json:"gender,omitempty"`
	HeightCm     *float64   `db:"height_cm" json:"height,omitempty"`
	WeightKg     *float64   `db:"weight_kg" json:"weight,omitempty"`
	BloodGroup   *string    `db:"blood_group" json:"bloodGroup,omitempty"`
	Allergies    []string   `db:"allergies" json:"allergies,omitempty"`
	Conditions   []string   `db:"conditions" json:"conditions,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// AuthResponse is the register/login response: public profile plus the
// issued bearer credential.
type AuthResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Token string    `json:"token"`
}
