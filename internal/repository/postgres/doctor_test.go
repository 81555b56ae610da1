package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicagenda/clinic-api/internal/model"
)

// testDB connects to TEST_DATABASE_URL and applies migrations. Tests in this
// package skip when the variable is unset.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, RunMigrations(url))

	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestClinic(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(`INSERT INTO clinics (id, name) VALUES ($1, $2)`, id, "Test Clinic")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec(`DELETE FROM clinics WHERE id = $1`, id)
	})
	return id
}

func testDoctor(clinicID uuid.UUID) *model.Doctor {
	return &model.Doctor{
		ClinicID:                clinicID,
		Name:                    "Dr. Ana Souza",
		Specialty:               "Cardiology",
		AppointmentPriceInCents: 15000,
		AvailableFromWeekday:    1,
		AvailableToWeekday:      5,
		AvailableFromTime:       model.TimeOfDay{Hour: 8},
		AvailableToTime:         model.TimeOfDay{Hour: 17, Minute: 30},
	}
}

func TestDoctorUpsertRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewDoctorRepository(NewBaseRepository(db))
	clinicID := createTestClinic(t, db)
	ctx := context.Background()

	doctor := testDoctor(clinicID)
	require.NoError(t, repo.Upsert(ctx, doctor))

	got, err := repo.Get(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, doctor.Name, got.Name)
	assert.Equal(t, model.TimeOfDay{Hour: 8}, got.AvailableFromTime)
	assert.Equal(t, model.TimeOfDay{Hour: 17, Minute: 30}, got.AvailableToTime)
}

func TestDoctorUpsertOverwritesOnConflict(t *testing.T) {
	db := testDB(t)
	repo := NewDoctorRepository(NewBaseRepository(db))
	clinicID := createTestClinic(t, db)
	ctx := context.Background()

	doctor := testDoctor(clinicID)
	require.NoError(t, repo.Upsert(ctx, doctor))
	firstUpdated := doctor.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	doctor.Specialty = "Dermatology"
	require.NoError(t, repo.Upsert(ctx, doctor))

	got, err := repo.Get(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dermatology", got.Specialty)
	assert.True(t, got.UpdatedAt.After(firstUpdated))

	var count int
	require.NoError(t, db.Get(&count, `SELECT count(*) FROM doctors WHERE id = $1`, doctor.ID))
	assert.Equal(t, 1, count)
}

func TestDoctorUpsertUnknownClinic(t *testing.T) {
	db := testDB(t)
	repo := NewDoctorRepository(NewBaseRepository(db))
	ctx := context.Background()

	doctor := testDoctor(uuid.New())
	err := repo.Upsert(ctx, doctor)
	require.Error(t, err)
}

func TestClinicDeleteCascades(t *testing.T) {
	db := testDB(t)
	repo := NewDoctorRepository(NewBaseRepository(db))
	clinicID := createTestClinic(t, db)
	otherClinicID := createTestClinic(t, db)
	ctx := context.Background()

	doctor := testDoctor(clinicID)
	require.NoError(t, repo.Upsert(ctx, doctor))
	otherDoctor := testDoctor(otherClinicID)
	require.NoError(t, repo.Upsert(ctx, otherDoctor))

	patientID := uuid.New()
	_, err := db.Exec(
		`INSERT INTO patients (id, clinic_id, name, email, phone_number, sex)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		patientID, clinicID, "Carlos Lima", "carlos@clinic.test", "+5511999990000", "male",
	)
	require.NoError(t, err)

	appointmentID := uuid.New()
	_, err = db.Exec(
		`INSERT INTO appointments (id, date, clinic_id, patient_id, doctor_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		appointmentID, time.Now().AddDate(0, 0, 7), clinicID, patientID, doctor.ID,
	)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM clinics WHERE id = $1`, clinicID)
	require.NoError(t, err)

	// Doctors, patients and appointments of the deleted clinic are all gone
	_, err = repo.Get(ctx, doctor.ID)
	require.Error(t, err)

	var count int
	require.NoError(t, db.Get(&count, `SELECT count(*) FROM patients WHERE id = $1`, patientID))
	assert.Equal(t, 0, count)
	require.NoError(t, db.Get(&count, `SELECT count(*) FROM appointments WHERE id = $1`, appointmentID))
	assert.Equal(t, 0, count)

	// The unrelated clinic's rows survive
	survivor, err := repo.Get(ctx, otherDoctor.ID)
	require.NoError(t, err)
	assert.Equal(t, otherClinicID, survivor.ClinicID)
}
