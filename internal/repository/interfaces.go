package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles user identity rows and membership reads
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		ListClinics(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error)
	}

	ClinicRepository interface {
		// CreateWithOwner inserts the clinic and the creator's membership in
		// one transaction.
		CreateWithOwner(ctx context.Context, clinic *model.Clinic, ownerID uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
		AddMember(ctx context.Context, membership *model.UserClinic) error
		ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.UserClinic, error)
		IsMember(ctx context.Context, userID, clinicID uuid.UUID) (bool, error)
	}

	DoctorRepository interface {
		// Upsert inserts the doctor or, on id conflict, overwrites every
		// field including clinic_id.
		Upsert(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
	}
)
