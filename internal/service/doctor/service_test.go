package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicagenda/clinic-api/internal/model"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
	upserts int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *fakeDoctorRepo) Upsert(ctx context.Context, doctor *model.Doctor) error {
	r.upserts++
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	now := time.Now().UTC()
	if _, ok := r.doctors[doctor.ID]; !ok {
		doctor.CreatedAt = now
	}
	doctor.UpdatedAt = now
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	copied := *doctor
	return &copied, nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		if d.ClinicID == clinicID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

func newTestService(repo *fakeDoctorRepo, loc *time.Location) *Service {
	svc := NewService(repo, loc)
	svc.now = func() time.Time {
		// Wednesday
		return time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func sessionWithClinic(clinicID uuid.UUID) *model.Session {
	return &model.Session{
		UserID:   uuid.New(),
		Email:    "doc@clinic.test",
		ClinicID: &clinicID,
	}
}

func upsertRequest() *model.UpsertDoctorRequest {
	return &model.UpsertDoctorRequest{
		Name:                    "Dr. Ana Souza",
		Specialty:               "Cardiology",
		AppointmentPriceInCents: 15000,
		AvailableFromWeekday:    model.WeekdaySunday + 1,
		AvailableToWeekday:      5,
		AvailableFromTime:       "08:00",
		AvailableToTime:         "17:30",
	}
}

func TestUpsertDoctor_Create(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)
	clinicID := uuid.New()

	doctor, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(clinicID), upsertRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, doctor.ID)
	assert.Equal(t, clinicID, doctor.ClinicID)
	assert.Equal(t, "08:00", doctor.AvailableFromTime.String())
	assert.Equal(t, "17:30", doctor.AvailableToTime.String())
}

func TestUpsertDoctor_ConvertsTimesToUTC(t *testing.T) {
	repo := newFakeDoctorRepo()
	loc := time.FixedZone("UTC-3", -3*60*60)
	svc := newTestService(repo, loc)

	doctor, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), upsertRequest())
	require.NoError(t, err)

	// 08:00 and 17:30 local (UTC-3) become 11:00 and 20:30 UTC.
	assert.Equal(t, "11:00", doctor.AvailableFromTime.String())
	assert.Equal(t, "20:30", doctor.AvailableToTime.String())
}

func TestUpsertDoctor_Idempotent(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)
	session := sessionWithClinic(uuid.New())

	created, err := svc.UpsertDoctor(context.Background(), session, upsertRequest())
	require.NoError(t, err)

	req := upsertRequest()
	req.ID = &created.ID
	req.Specialty = "Dermatology"

	updated, err := svc.UpsertDoctor(context.Background(), session, req)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dermatology", updated.Specialty)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Len(t, repo.doctors, 1)
}

func TestUpsertDoctor_NilSession(t *testing.T) {
	svc := newTestService(newFakeDoctorRepo(), time.UTC)

	_, err := svc.UpsertDoctor(context.Background(), nil, upsertRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthenticated, apperrors.Code(err))
}

func TestUpsertDoctor_NoClinicContext(t *testing.T) {
	svc := newTestService(newFakeDoctorRepo(), time.UTC)
	session := &model.Session{UserID: uuid.New(), Email: "doc@clinic.test"}

	_, err := svc.UpsertDoctor(context.Background(), session, upsertRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNoClinicContext, apperrors.Code(err))
}

func TestUpsertDoctor_RejectsInvertedTimes(t *testing.T) {
	svc := newTestService(newFakeDoctorRepo(), time.UTC)

	req := upsertRequest()
	req.AvailableFromTime = "10:00"
	req.AvailableToTime = "09:00"

	_, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestUpsertDoctor_RejectsWraparoundWeekdays(t *testing.T) {
	svc := newTestService(newFakeDoctorRepo(), time.UTC)

	req := upsertRequest()
	req.AvailableFromWeekday = 5
	req.AvailableToWeekday = 1

	_, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestUpsertDoctor_RejectsBadTimeFormat(t *testing.T) {
	svc := newTestService(newFakeDoctorRepo(), time.UTC)

	req := upsertRequest()
	req.AvailableFromTime = "eight o'clock"

	_, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestUpsertDoctor_CrossClinicOverwriteDenied(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)

	created, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), upsertRequest())
	require.NoError(t, err)

	req := upsertRequest()
	req.ID = &created.ID

	_, err = svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
	assert.Equal(t, 1, repo.upserts)
}

func TestGetDoctor_OtherClinicNotFound(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)

	created, err := svc.UpsertDoctor(context.Background(), sessionWithClinic(uuid.New()), upsertRequest())
	require.NoError(t, err)

	_, err = svc.GetDoctor(context.Background(), sessionWithClinic(uuid.New()), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestListDoctors_ScopedToClinic(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)
	sessionA := sessionWithClinic(uuid.New())
	sessionB := sessionWithClinic(uuid.New())

	_, err := svc.UpsertDoctor(context.Background(), sessionA, upsertRequest())
	require.NoError(t, err)
	_, err = svc.UpsertDoctor(context.Background(), sessionB, upsertRequest())
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(context.Background(), sessionA)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
	assert.Equal(t, *sessionA.ClinicID, doctors[0].ClinicID)
}

func TestGetAvailability_CurrentWeek(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := newTestService(repo, time.UTC)
	session := sessionWithClinic(uuid.New())

	created, err := svc.UpsertDoctor(context.Background(), session, upsertRequest())
	require.NoError(t, err)

	win, err := svc.GetAvailability(context.Background(), session, created.ID)
	require.NoError(t, err)

	// Week containing Wednesday 2026-01-14: Monday the 12th through Friday
	// the 16th.
	assert.Equal(t, time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC), win.From)
	assert.Equal(t, time.Date(2026, 1, 16, 17, 30, 0, 0, time.UTC), win.To)
}
