package appointment

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

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return a, nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, clinicID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, a := range r.appointments {
		if a.ClinicID == clinicID {
			out = append(out, &model.AppointmentDetail{Appointment: *a})
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *fakeDoctorRepo) Upsert(ctx context.Context, doctor *model.Doctor) error {
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	return nil, nil
}

type fixture struct {
	svc      *Service
	clinicID uuid.UUID
	session  *model.Session
	doctor   *model.Doctor
	patient  *model.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clinicID := uuid.New()
	doctor := &model.Doctor{
		Base:     model.Base{ID: uuid.New()},
		ClinicID: clinicID,
		Name:     "Dr. Ana Souza",
	}
	patient := &model.Patient{
		Base:     model.Base{ID: uuid.New()},
		ClinicID: &clinicID,
		Name:     "Carlos Lima",
	}

	doctorRepo := &fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{doctor.ID: doctor}}
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}
	apptRepo := &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}

	return &fixture{
		svc:      NewService(apptRepo, doctorRepo, patientRepo),
		clinicID: clinicID,
		session:  &model.Session{UserID: uuid.New(), Email: "user@clinic.test", ClinicID: &clinicID},
		doctor:   doctor,
		patient:  patient,
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	appointment, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.clinicID, appointment.ClinicID)
	assert.Equal(t, f.doctor.ID, appointment.DoctorID)
	assert.Equal(t, f.patient.ID, appointment.PatientID)
}

func TestCreateAppointment_DoctorFromOtherClinic(t *testing.T) {
	f := newFixture(t)
	f.doctor.ClinicID = uuid.New()

	_, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Now(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestCreateAppointment_PatientFromOtherClinic(t *testing.T) {
	f := newFixture(t)
	other := uuid.New()
	f.patient.ClinicID = &other

	_, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Now(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestCreateAppointment_NoClinicContext(t *testing.T) {
	f := newFixture(t)
	f.session.ClinicID = nil

	_, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Now(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNoClinicContext, apperrors.Code(err))
}

func TestGetAppointment_OtherClinicNotFound(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Now(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.NoError(t, err)

	other := uuid.New()
	session := &model.Session{UserID: uuid.New(), Email: "other@clinic.test", ClinicID: &other}

	_, err = f.svc.GetAppointment(context.Background(), session, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestListAppointments_ScopedToClinic(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), f.session, &model.CreateAppointmentRequest{
		Date:      time.Now(),
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
	})
	require.NoError(t, err)

	appointments, err := f.svc.ListAppointments(context.Background(), f.session, nil)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)

	other := uuid.New()
	session := &model.Session{UserID: uuid.New(), Email: "other@clinic.test", ClinicID: &other}
	appointments, err = f.svc.ListAppointments(context.Background(), session, nil)
	require.NoError(t, err)
	assert.Empty(t, appointments)
}
