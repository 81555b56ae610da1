package model

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	Base
	Date      time.Time `db:"date" json:"date"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
}

// AppointmentDetail is the joined read used by listings: an appointment with
// its doctor and patient resolved through the clinic relationship graph.
type AppointmentDetail struct {
	Appointment
	DoctorName       string     `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialty  string     `db:"doctor_specialty" json:"doctor_specialty"`
	PatientName      string     `db:"patient_name" json:"patient_name"`
	PatientEmail     string     `db:"patient_email" json:"patient_email"`
	PatientSex       PatientSex `db:"patient_sex" json:"patient_sex"`
	PriceInCents     int        `db:"price_in_cents" json:"price_in_cents"`
}

type CreateAppointmentRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
}

type AppointmentFilters struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
