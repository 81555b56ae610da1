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

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

// Upsert writes the doctor keyed on id. On conflict every field, including
// clinic_id, is overwritten; created_at keeps the original row's value and
// updated_at is refreshed either way. Concurrent writers race on the storage
// engine's conflict resolution, last writer wins.
func (r *doctorRepository) Upsert(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, clinic_id, name, avatar_image_url,
			available_from_weekday, available_to_weekday,
			available_from_time, available_to_time,
			specialty, appointment_price_in_cents,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			clinic_id = EXCLUDED.clinic_id,
			name = EXCLUDED.name,
			avatar_image_url = EXCLUDED.avatar_image_url,
			available_from_weekday = EXCLUDED.available_from_weekday,
			available_to_weekday = EXCLUDED.available_to_weekday,
			available_from_time = EXCLUDED.available_from_time,
			available_to_time = EXCLUDED.available_to_time,
			specialty = EXCLUDED.specialty,
			appointment_price_in_cents = EXCLUDED.appointment_price_in_cents,
			updated_at = EXCLUDED.updated_at
	`
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.Touch(time.Now())

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.ClinicID,
		doctor.Name,
		doctor.AvatarImageURL,
		doctor.AvailableFromWeekday,
		doctor.AvailableToWeekday,
		doctor.AvailableFromTime,
		doctor.AvailableToTime,
		doctor.Specialty,
		doctor.AppointmentPriceInCents,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to upsert doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, name, avatar_image_url,
			   available_from_weekday, available_to_weekday,
			   available_from_time, available_to_time,
			   specialty, appointment_price_in_cents,
			   created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, name, avatar_image_url,
			   available_from_weekday, available_to_weekday,
			   available_from_time, available_to_time,
			   specialty, appointment_price_in_cents,
			   created_at, updated_at
		FROM doctors
		WHERE clinic_id = $1
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}

	return nil
}
