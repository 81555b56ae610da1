package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	User        *User   `json:"user"`
	Clinic      *Clinic `json:"clinic,omitempty"`
}

// Session is the authenticated request context derived from a validated
// token. ClinicID is nil until the user creates or joins a clinic.
type Session struct {
	UserID   uuid.UUID
	Email    string
	ClinicID *uuid.UUID
}
