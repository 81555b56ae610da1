package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
	"github.com/clinicagenda/clinic-api/pkg/auth"
	apperrors "github.com/clinicagenda/clinic-api/pkg/errors"
	"github.com/clinicagenda/clinic-api/pkg/security"
)

type AuthServicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*model.Session, error)
	RefreshSession(ctx context.Context, userID uuid.UUID) (*model.TokenResponse, error)
}

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthenticated(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthenticated(fmt.Errorf("invalid credentials"))
	}

	return s.issueToken(ctx, user)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Session, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthenticated(err)
	}

	return &model.Session{
		UserID:   claims.UserID,
		Email:    claims.Email,
		ClinicID: claims.ClinicID,
	}, nil
}

// RefreshSession reissues a token for the user, picking up clinic membership
// created since the current token was minted.
func (s *Service) RefreshSession(ctx context.Context, userID uuid.UUID) (*model.TokenResponse, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return s.issueToken(ctx, user)
}

// issueToken mints a session token. The user's first clinic membership, if
// any, becomes the session's tenant scope.
func (s *Service) issueToken(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	clinics, err := s.userRepo.ListClinics(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	claims := &auth.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
	}
	var clinic *model.Clinic
	if len(clinics) > 0 {
		clinic = clinics[0]
		claims.ClinicID = &clinic.ID
	}

	token, err := s.jwtSvc.GenerateToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		User:        user,
		Clinic:      clinic,
	}, nil
}
