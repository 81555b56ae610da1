package model

import (
	"github.com/google/uuid"
)

// Clinic is the tenant boundary: every doctor, patient and appointment belongs
// to exactly one clinic, and deleting a clinic cascades into all of them.
type Clinic struct {
	Base
	Name string `db:"name" json:"name"`
}

type CreateClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddMemberRequest grants an existing user membership in the clinic
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}
