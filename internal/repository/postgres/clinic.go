package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

func (r *clinicRepository) CreateWithOwner(ctx context.Context, clinic *model.Clinic, ownerID uuid.UUID) error {
	clinic.ID = uuid.New()
	clinic.Touch(time.Now())

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clinics (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
			clinic.ID, clinic.Name, clinic.CreatedAt, clinic.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create clinic: %w", translateError(err))
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO users_to_clinics (user_id, clinic_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
			ownerID, clinic.ID, clinic.CreatedAt, clinic.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create membership: %w", translateError(err))
		}
		return nil
	})
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("clinic", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, clinic.Name, clinic.UpdatedAt, clinic.ID)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("clinic", nil)
	}

	return nil
}

// Delete removes the clinic; doctors, patients and appointments referencing it
// are removed by the ON DELETE CASCADE constraints. Memberships are not
// cascaded and must be removed explicitly.
func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users_to_clinics WHERE clinic_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete clinic: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("clinic", nil)
		}
		return nil
	})
}

func (r *clinicRepository) AddMember(ctx context.Context, membership *model.UserClinic) error {
	query := `
		INSERT INTO users_to_clinics (user_id, clinic_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	now := time.Now()
	membership.CreatedAt = now
	membership.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		membership.UserID,
		membership.ClinicID,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *clinicRepository) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.UserClinic, error) {
	query := `
		SELECT user_id, clinic_id, created_at, updated_at
		FROM users_to_clinics
		WHERE clinic_id = $1
		ORDER BY created_at ASC
	`
	var members []*model.UserClinic
	err := r.db.SelectContext(ctx, &members, query, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *clinicRepository) IsMember(ctx context.Context, userID, clinicID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users_to_clinics
			WHERE user_id = $1 AND clinic_id = $2
		)
	`
	var isMember bool
	err := r.db.GetContext(ctx, &isMember, query, userID, clinicID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return isMember, nil
}
