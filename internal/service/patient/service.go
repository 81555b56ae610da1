package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, session *model.Session, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, session *model.Session, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, session *model.Session, id uuid.UUID) error
	ListPatients(ctx context.Context, session *model.Session) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, session *model.Session, req *model.CreatePatientRequest) (*model.Patient, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		ClinicID:    &clinicID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Sex:         model.PatientSex(req.Sex),
	}
	if patient.Sex != model.PatientSexMale && patient.Sex != model.PatientSexFemale {
		return nil, apperrors.Validation("sex must be male or female", nil)
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Patient, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient.ClinicID == nil || *patient.ClinicID != clinicID {
		return nil, apperrors.NotFound("patient", nil)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, session *model.Session, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.Sex != nil {
		patient.Sex = model.PatientSex(*req.Sex)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, session *model.Session, id uuid.UUID) error {
	if _, err := s.GetPatient(ctx, session, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, session *model.Session) ([]*model.Patient, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	patients, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
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
