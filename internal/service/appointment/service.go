package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type AppointmentServicer interface {
	CreateAppointment(ctx context.Context, session *model.Session, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, session *model.Session, id uuid.UUID) error
	ListAppointments(ctx context.Context, session *model.Session, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.AppointmentRepository, doctorRepo repository.DoctorRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		repo:        repo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

// CreateAppointment schedules a visit. The referenced doctor and patient must
// belong to the session's clinic; the foreign keys alone do not enforce that
// all three rows share a tenant.
func (s *Service) CreateAppointment(ctx context.Context, session *model.Session, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor.ClinicID != clinicID {
		return nil, apperrors.Validation("doctor belongs to a different clinic", nil)
	}

	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient.ClinicID == nil || *patient.ClinicID != clinicID {
		return nil, apperrors.Validation("patient belongs to a different clinic", nil)
	}

	appointment := &model.Appointment{
		Date:      req.Date,
		ClinicID:  clinicID,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Appointment, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment.ClinicID != clinicID {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, session *model.Session, id uuid.UUID) error {
	if _, err := s.GetAppointment(ctx, session, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *Service) ListAppointments(ctx context.Context, session *model.Session, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	appointments, err := s.repo.List(ctx, clinicID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func requireClinic(session *model.Session) (uuid.UUID, error) {
	if session == nil {
		return uuid.Nil, apperrors.Unauthenticated(nil)
	}
	if session.ClinicID == nil {
		return uuid.Nil, apperrors.NoClinicContext()
	}
	return *session.ClinicID, nil
}
