package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, date, clinic_id, patient_id, doctor_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	appointment.ID = uuid.New()
	appointment.Touch(time.Now())

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.Date,
		appointment.ClinicID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, date, clinic_id, patient_id, doctor_id, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	return nil
}

// List resolves the appointment's doctor and patient in one joined read, the
// traversal the relationship graph exists for.
func (r *appointmentRepository) List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, a.date, a.clinic_id, a.patient_id, a.doctor_id,
			   a.created_at, a.updated_at,
			   d.name AS doctor_name,
			   d.specialty AS doctor_specialty,
			   d.appointment_price_in_cents AS price_in_cents,
			   p.name AS patient_name,
			   p.email AS patient_email,
			   p.sex AS patient_sex
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.clinic_id = $1
	`
	args := []interface{}{clinicID}
	argCount := 2

	if filters != nil {
		if filters.DoctorID != nil {
			query += fmt.Sprintf(" AND a.doctor_id = $%d", argCount)
			args = append(args, *filters.DoctorID)
			argCount++
		}
		if filters.PatientID != nil {
			query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
			args = append(args, *filters.PatientID)
			argCount++
		}
		if filters.StartDate != nil {
			query += fmt.Sprintf(" AND a.date >= $%d", argCount)
			args = append(args, *filters.StartDate)
			argCount++
		}
		if filters.EndDate != nil {
			query += fmt.Sprintf(" AND a.date <= $%d", argCount)
			args = append(args, *filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY a.date ASC"

	var appointments []*model.AppointmentDetail
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
