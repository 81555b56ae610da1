package model

import (
	"github.com/google/uuid"
)

// Weekday bounds, 0 = Sunday .. 6 = Saturday
const (
	WeekdaySunday   = 0
	WeekdaySaturday = 6
)

type Doctor struct {
	Base
	ClinicID       uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name           string    `db:"name" json:"name"`
	AvatarImageURL *string   `db:"avatar_image_url" json:"avatar_image_url,omitempty"`
	// Weekly availability window. Times are UTC wall clock; weekdays use the
	// 0=Sunday encoding.
	AvailableFromWeekday    int       `db:"available_from_weekday" json:"available_from_weekday"`
	AvailableToWeekday      int       `db:"available_to_weekday" json:"available_to_weekday"`
	AvailableFromTime       TimeOfDay `db:"available_from_time" json:"available_from_time"`
	AvailableToTime         TimeOfDay `db:"available_to_time" json:"available_to_time"`
	Specialty               string    `db:"specialty" json:"specialty"`
	AppointmentPriceInCents int       `db:"appointment_price_in_cents" json:"appointment_price_in_cents"`
}

type UpsertDoctorRequest struct {
	ID                      *uuid.UUID `json:"id"`
	Name                    string     `json:"name" binding:"required"`
	Specialty               string     `json:"specialty" binding:"required"`
	AvatarImageURL          *string    `json:"avatar_image_url" binding:"omitempty,url"`
	AppointmentPriceInCents int        `json:"appointment_price_in_cents" binding:"required,gt=0"`
	AvailableFromWeekday    int        `json:"available_from_weekday" binding:"min=0,max=6"`
	AvailableToWeekday      int        `json:"available_to_weekday" binding:"min=0,max=6"`
	AvailableFromTime       string     `json:"available_from_time" binding:"required,timeofday"`
	AvailableToTime         string     `json:"available_to_time" binding:"required,timeofday"`
}
