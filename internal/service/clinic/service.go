package clinic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type ClinicServicer interface {
	CreateClinic(ctx context.Context, ownerID uuid.UUID, name string) (*model.Clinic, error)
	GetClinic(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Clinic, error)
	UpdateClinic(ctx context.Context, session *model.Session, id uuid.UUID, name string) (*model.Clinic, error)
	DeleteClinic(ctx context.Context, session *model.Session, id uuid.UUID) error
	AddMember(ctx context.Context, session *model.Session, clinicID, userID uuid.UUID) error
	ListMembers(ctx context.Context, session *model.Session, id uuid.UUID) ([]*model.UserClinic, error)
}

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

// CreateClinic creates the clinic and the creator's membership atomically.
// The caller is expected to reissue the session token afterwards so the new
// clinic becomes the session's tenant scope.
func (s *Service) CreateClinic(ctx context.Context, ownerID uuid.UUID, name string) (*model.Clinic, error) {
	if name == "" {
		return nil, apperrors.Validation("clinic name is required", nil)
	}

	clinic := &model.Clinic{Name: name}
	if err := s.repo.CreateWithOwner(ctx, clinic, ownerID); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Clinic, error) {
	if err := s.requireMembership(ctx, session, id); err != nil {
		return nil, err
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) UpdateClinic(ctx context.Context, session *model.Session, id uuid.UUID, name string) (*model.Clinic, error) {
	if err := s.requireMembership(ctx, session, id); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Validation("clinic name is required", nil)
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	clinic.Name = name
	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to update clinic: %w", err)
	}
	return clinic, nil
}

// AddMember grants userID membership in the clinic. Any existing member can
// add others; the storage layer's uniqueness constraint turns a duplicate
// grant into a ConstraintViolation.
func (s *Service) AddMember(ctx context.Context, session *model.Session, clinicID, userID uuid.UUID) error {
	if err := s.requireMembership(ctx, session, clinicID); err != nil {
		return err
	}

	membership := &model.UserClinic{UserID: userID, ClinicID: clinicID}
	if err := s.repo.AddMember(ctx, membership); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// DeleteClinic removes the clinic; the storage layer cascades the delete into
// the clinic's doctors, patients and appointments.
func (s *Service) DeleteClinic(ctx context.Context, session *model.Session, id uuid.UUID) error {
	if err := s.requireMembership(ctx, session, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return nil
}

func (s *Service) ListMembers(ctx context.Context, session *model.Session, id uuid.UUID) ([]*model.UserClinic, error) {
	if err := s.requireMembership(ctx, session, id); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, id)
}

// requireMembership re-validates the tenant scope server-side instead of
// trusting the id in the request path.
func (s *Service) requireMembership(ctx context.Context, session *model.Session, clinicID uuid.UUID) error {
	if session == nil {
		return apperrors.Unauthenticated(nil)
	}
	isMember, err := s.repo.IsMember(ctx, session.UserID, clinicID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return apperrors.NotFound("clinic", nil)
	}
	return nil
}
