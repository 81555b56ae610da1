package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	"github.com/clinicagenda/clinic-api/internal/schedule"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
)

type DoctorServicer interface {
	UpsertDoctor(ctx context.Context, session *model.Session, req *model.UpsertDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Doctor, error)
	ListDoctors(ctx context.Context, session *model.Session) ([]*model.Doctor, error)
	DeleteDoctor(ctx context.Context, session *model.Session, id uuid.UUID) error
	GetAvailability(ctx context.Context, session *model.Session, id uuid.UUID) (*schedule.Window, error)
}

type Service struct {
	repo repository.DoctorRepository
	// loc is the zone availability inputs are collected in and availability
	// windows are displayed in. Storage is always UTC wall clock.
	loc *time.Location
	now func() time.Time
}

func NewService(repo repository.DoctorRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// UpsertDoctor validates and persists a doctor scoped to the session's
// clinic. The clinic id comes from the authenticated session, never from the
// request body. An id in the request means update; the write is idempotent
// keyed on id.
func (s *Service) UpsertDoctor(ctx context.Context, session *model.Session, req *model.UpsertDoctorRequest) (*model.Doctor, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	fromTime, err := model.ParseTimeOfDay(req.AvailableFromTime)
	if err != nil {
		return nil, apperrors.Validation("invalid available_from_time", err)
	}
	toTime, err := model.ParseTimeOfDay(req.AvailableToTime)
	if err != nil {
		return nil, apperrors.Validation("invalid available_to_time", err)
	}

	if err := validateWindow(req.AvailableFromWeekday, req.AvailableToWeekday, fromTime, toTime); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		ClinicID:                clinicID,
		Name:                    req.Name,
		AvatarImageURL:          req.AvatarImageURL,
		Specialty:               req.Specialty,
		AppointmentPriceInCents: req.AppointmentPriceInCents,
		AvailableFromWeekday:    req.AvailableFromWeekday,
		AvailableToWeekday:      req.AvailableToWeekday,
		AvailableFromTime:       schedule.ToUTC(fromTime, s.now(), s.loc),
		AvailableToTime:         schedule.ToUTC(toTime, s.now(), s.loc),
	}

	if req.ID != nil {
		// Updating: make sure the row being overwritten belongs to the
		// session's clinic before the upsert rewrites its tenant.
		existing, err := s.repo.Get(ctx, *req.ID)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to load doctor: %w", err)
		}
		if existing != nil && existing.ClinicID != clinicID {
			return nil, apperrors.NotFound("doctor", nil)
		}
		doctor.ID = *req.ID
		if existing != nil {
			doctor.CreatedAt = existing.CreatedAt
		}
	}

	if err := s.repo.Upsert(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to upsert doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Doctor, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.ClinicID != clinicID {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return doctor, nil
}

func (s *Service) ListDoctors(ctx context.Context, session *model.Session) ([]*model.Doctor, error) {
	clinicID, err := requireClinic(session)
	if err != nil {
		return nil, err
	}

	doctors, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, session *model.Session, id uuid.UUID) error {
	if _, err := s.GetDoctor(ctx, session, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

// GetAvailability derives the doctor's concrete availability window for the
// current calendar week, converted to the display zone.
func (s *Service) GetAvailability(ctx context.Context, session *model.Session, id uuid.UUID) (*schedule.Window, error) {
	doctor, err := s.GetDoctor(ctx, session, id)
	if err != nil {
		return nil, err
	}

	win := schedule.Availability(doctor, s.now(), s.loc)
	return &win, nil
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

// validateWindow enforces the availability invariants server-side rather than
// trusting the client-side form validator.
func validateWindow(fromWeekday, toWeekday int, fromTime, toTime model.TimeOfDay) error {
	if fromWeekday < model.WeekdaySunday || fromWeekday > model.WeekdaySaturday ||
		toWeekday < model.WeekdaySunday || toWeekday > model.WeekdaySaturday {
		return apperrors.Validation("weekdays must be between 0 (Sunday) and 6 (Saturday)", nil)
	}
	// Wraparound windows (e.g. Friday through Monday) are rejected rather
	// than interpreted as crossing the week boundary.
	if fromWeekday > toWeekday {
		return apperrors.Validation("available_from_weekday must not be after available_to_weekday", nil)
	}
	if !fromTime.Before(toTime) {
		return apperrors.Validation("available_from_time must be before available_to_time", nil)
	}
	return nil
}

func isNotFound(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrNotFound
}
