package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/dto"
)

// ErrInvalidCredentials indicates a failed back-office login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionExpired indicates a token whose server-side session is gone.
var ErrSessionExpired = errors.New("session expired")

const sessionKeyPrefix = "admin_session:"

// CredentialVerifier checks a presented back-office secret. The shared-secret
// verifier is the default; the interface keeps room for stronger schemes.
type CredentialVerifier interface {
	Verify(secret string) bool
}

type sharedSecretVerifier struct {
	digest [32]byte
}

// NewSharedSecretVerifier verifies logins against a single operator secret.
func NewSharedSecretVerifier(secret string) CredentialVerifier {
	return &sharedSecretVerifier{digest: sha256.Sum256([]byte(secret))}
}

func (v *sharedSecretVerifier) Verify(secret string) bool {
	presented := sha256.Sum256([]byte(secret))
	return subtle.ConstantTimeCompare(v.digest[:], presented[:]) == 1
}

// AuthService issues and revokes back-office sessions. A session is valid
// only while both the signed token and its server-side flag are alive, so
// logout revokes access immediately regardless of token expiry.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (dto.SessionResponse, error)
}

type authService struct {
	verifier  CredentialVerifier
	redis     *redis.Client
	activity  ActivityRecorder
	validator *validator.Validate
	jwtSecret []byte
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewAuthService constructs the session guard.
func NewAuthService(verifier CredentialVerifier, redisClient *redis.Client, activity ActivityRecorder, validate *validator.Validate, jwtSecret string, ttl time.Duration, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &authService{
		verifier:  verifier,
		redis:     redisClient,
		activity:  activity,
		validator: validate,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	if !s.verifier.Verify(req.Secret) {
		s.logger.Warn().Msg("rejected login attempt")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       "admin",
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), "1", s.ttl).Err(); err != nil {
		return dto.LoginResponse{}, fmt.Errorf("store session: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "session.opened",
			EntityType: "session",
			EntityID:   &sessionID,
		})
	}

	s.logger.Info().Str("session_id", sessionID).Msg("admin session opened")

	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.logger.Info().Str("session_id", sessionID).Msg("admin session closed")
	return nil
}

func (s *authService) Session(ctx context.Context, sessionID string) (dto.SessionResponse, error) {
	if sessionID == "" {
		return dto.SessionResponse{Authenticated: false}, nil
	}

	exists, err := s.redis.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("check session: %w", err)
	}

	return dto.SessionResponse{Authenticated: exists > 0}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
