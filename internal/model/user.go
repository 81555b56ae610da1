package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	Password     string `db:"-" json:"password,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// UserClinic joins users to the clinics they belong to. A (user, clinic) pair
// is unique; a user with zero rows is routed to the clinic-creation flow.
type UserClinic struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
