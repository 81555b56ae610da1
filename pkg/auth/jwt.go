package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by a session token. ClinicID is nil for
// users who have not created or joined a clinic yet.
type SessionClaims struct {
	UserID   uuid.UUID
	Email    string
	ClinicID *uuid.UUID
}

type JWTService interface {
	GenerateToken(claims *SessionClaims) (string, error)
	ValidateToken(token string) (*SessionClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) GenerateToken(claims *SessionClaims) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"user_id": claims.UserID.String(),
		"email":   claims.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiry).Unix(),
	}
	if claims.ClinicID != nil {
		mapClaims["clinic_id"] = claims.ClinicID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawUserID, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("missing user_id claim")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id claim: %w", err)
	}

	claims := &SessionClaims{UserID: userID}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if rawClinicID, ok := mapClaims["clinic_id"].(string); ok {
		clinicID, err := uuid.Parse(rawClinicID)
		if err != nil {
			return nil, fmt.Errorf("invalid clinic_id claim: %w", err)
		}
		claims.ClinicID = &clinicID
	}

	return claims, nil
}
