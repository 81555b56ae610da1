package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicagenda/clinic-api/internal/model"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

func createTestUser(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
		id, fmt.Sprintf("user+%d@clinic.test", time.Now().UnixNano()), "Test User", "x",
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users_to_clinics WHERE user_id = $1`, id)
		db.Exec(`DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func TestCreateWithOwner(t *testing.T) {
	db := testDB(t)
	repo := NewClinicRepository(NewBaseRepository(db))
	ownerID := createTestUser(t, db)
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Clinica Central"}
	require.NoError(t, repo.CreateWithOwner(ctx, clinic, ownerID))
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users_to_clinics WHERE clinic_id = $1`, clinic.ID)
		db.Exec(`DELETE FROM clinics WHERE id = $1`, clinic.ID)
	})

	isMember, err := repo.IsMember(ctx, ownerID, clinic.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestAddMemberDuplicate(t *testing.T) {
	db := testDB(t)
	repo := NewClinicRepository(NewBaseRepository(db))
	ownerID := createTestUser(t, db)
	memberID := createTestUser(t, db)
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Clinica Central"}
	require.NoError(t, repo.CreateWithOwner(ctx, clinic, ownerID))
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users_to_clinics WHERE clinic_id = $1`, clinic.ID)
		db.Exec(`DELETE FROM clinics WHERE id = $1`, clinic.ID)
	})

	membership := &model.UserClinic{UserID: memberID, ClinicID: clinic.ID}
	require.NoError(t, repo.AddMember(ctx, membership))

	// A (user, clinic) pair is unique
	err := repo.AddMember(ctx, &model.UserClinic{UserID: memberID, ClinicID: clinic.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConstraintViolation, apperrors.Code(err))
}

func TestAddMemberUnknownUser(t *testing.T) {
	db := testDB(t)
	repo := NewClinicRepository(NewBaseRepository(db))
	ownerID := createTestUser(t, db)
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Clinica Central"}
	require.NoError(t, repo.CreateWithOwner(ctx, clinic, ownerID))
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users_to_clinics WHERE clinic_id = $1`, clinic.ID)
		db.Exec(`DELETE FROM clinics WHERE id = $1`, clinic.ID)
	})

	err := repo.AddMember(ctx, &model.UserClinic{UserID: uuid.New(), ClinicID: clinic.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConstraintViolation, apperrors.Code(err))
}
