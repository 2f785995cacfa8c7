package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/observability"
	"alcyxob/fitcoach/internal/repository"
	"alcyxob/fitcoach/internal/storage"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginMethod names the button the user pressed on the login screen.
type LoginMethod string

const (
	LoginPassword LoginMethod = "password"
	LoginGoogle   LoginMethod = "google"
)

// TokenIssuer is the iss claim of session tokens.
const TokenIssuer = "fitcoach"

// SessionClaims is the JWT payload. The subject is the session id.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthService opens and closes sessions. Login is a stub: credentials are
// accepted without being checked, and every login starts a fresh session.
type AuthService interface {
	Login(ctx context.Context, method LoginMethod) (token string, session *domain.Session, err error)
	Logout(ctx context.Context, sessionID string) error
	// ValidateSession answers ErrSessionNotFound once the session was
	// logged out or has expired.
	ValidateSession(ctx context.Context, sessionID string) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	sessionRepo   repository.SessionRepository
	files         storage.FileStorage // nil when photo storage is off
	jwtSecret     string
	jwtExpiration time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(sessionRepo repository.SessionRepository, files storage.FileStorage, jwtSecret string, jwtExpiration time.Duration, logger *zap.Logger) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		sessionRepo:   sessionRepo,
		files:         files,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		logger:        logger,
		now:           time.Now,
	}
}

// Login creates a session positioned on the first onboarding step and
// returns a token bound to it.
func (s *authService) Login(ctx context.Context, method LoginMethod) (string, *domain.Session, error) {
	if method == "" {
		method = LoginPassword
	}
	now := s.now().UTC()
	session := domain.NewSession(uuid.NewString(), now, s.jwtExpiration)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.generateJWT(session)
	if err != nil {
		s.logger.Error("token signing failed", zap.String("session", session.ID), zap.Error(err))
		// Do not leave an unreachable session behind.
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return "", nil, ErrTokenGeneration
	}

	observability.RecordSessionStarted(string(method))
	s.logger.Info("session started", zap.String("session", session.ID), zap.String("method", string(method)))
	return token, session, nil
}

// Logout discards the session and every progress photo uploaded during it.
// Photo keys are derived from the session id, so every slot is deleted
// whether or not the session recorded it.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if _, err := loadSession(ctx, s.sessionRepo, sessionID); err != nil {
		return err
	}

	if s.files != nil {
		for _, slot := range domain.PhotoSlots {
			key := storage.PhotoObjectKey(sessionID, string(slot))
			if err := s.files.DeleteObject(ctx, key); err != nil {
				// best effort, logout still succeeds
				s.logger.Warn("progress photo not deleted",
					zap.String("session", sessionID),
					zap.String("slot", string(slot)),
					zap.Error(err))
			}
		}
	}

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	observability.RecordSessionEnded()
	s.logger.Info("session ended", zap.String("session", sessionID))
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID string) error {
	_, err := loadSession(ctx, s.sessionRepo, sessionID)
	return err
}

// generateJWT signs a token that expires together with the session.
func (s *authService) generateJWT(session *domain.Session) (string, error) {
	claims := &SessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
