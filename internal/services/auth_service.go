package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyrelay/chat-relay-service/internal/auth"
	"github.com/studyrelay/chat-relay-service/internal/events"
	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

// AuthService owns the authentication state machine: registration, the
// Anonymous -> Authenticated transition on login, session validation with
// strong fingerprint binding, and termination.
type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *validator.LoginRequest, fingerprint string) (*models.SessionInfo, error)

	// Validate checks a session token against the caller's current
	// fingerprint. Expired, unknown or hijacked sessions return
	// ErrSessionInvalid; a fingerprint mismatch invalidates the session
	// immediately, with no grace period.
	Validate(ctx context.Context, token, fingerprint string) (*models.Session, error)

	Logout(ctx context.Context, token string) error

	GetProfile(ctx context.Context, userID uint) (*models.User, error)
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo      repositories.Repository
	hasher    auth.PasswordHasher
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger

	sessionLifetime time.Duration
}

func NewAuthService(
	repo repositories.Repository,
	hasher auth.PasswordHasher,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
	sessionLifetime time.Duration,
) AuthService {
	return &authService{
		repo:            repo,
		hasher:          hasher,
		validator:       v,
		publisher:       publisher,
		logger:          logger,
		sessionLifetime: sessionLifetime,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	// The identifier is normalized before validation so the validated value is
	// exactly the stored one; a padded variant must not mint a second identity.
	req.StudentID = strings.TrimSpace(req.StudentID)

	if verrs := s.validator.ValidateRegister(req); verrs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	user := &models.User{
		StudentID:    req.StudentID,
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		SchoolName:   req.SchoolName,
		Grade:        validator.StripLeadingZeros(req.Grade),
		ClassNo:      validator.StripLeadingZeros(req.ClassNo),
		Role:         models.RoleStudent,
		PasswordHash: digest,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "student_id", user.StudentID)
	s.publishEvent(ctx, events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UserID:    user.ID,
		StudentID: user.StudentID,
		School:    user.SchoolName,
	}))

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest, fingerprint string) (*models.SessionInfo, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)

	if verrs := s.validator.ValidateLogin(req); verrs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	user, err := s.repo.User().GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Burn a verification anyway so an unknown identifier is not
			// distinguishable from a wrong password by timing.
			s.hasher.Verify(req.Password, dummyDigest)
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehashCredential(ctx, user, req.Password)
	}

	now := time.Now()
	session := &models.Session{
		Token:       uuid.New().String(),
		UserID:      user.ID,
		StudentID:   user.StudentID,
		Fingerprint: fingerprint,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionLifetime),
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("session established", "user_id", user.ID, "expires_at", session.ExpiresAt)

	return &models.SessionInfo{
		Token:     session.Token,
		UserID:    session.UserID,
		StudentID: session.StudentID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Validate(ctx context.Context, token, fingerprint string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.repo.Session().Get(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The store TTL already enforces expiry; the explicit check keeps the
	// absolute lifetime authoritative even if the backend lags.
	if session.Expired(time.Now()) {
		s.discardSession(ctx, token, "expired")
		return nil, ErrSessionInvalid
	}

	if session.Fingerprint != fingerprint {
		// Strong session protection: a changed client fingerprint kills the
		// session immediately.
		s.discardSession(ctx, token, "fingerprint mismatch")
		return nil, ErrSessionInvalid
	}

	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Session().Delete(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// ===== HELPERS =====

// dummyDigest is a bcrypt digest of a throwaway value, used to equalize
// verification timing for unknown identifiers.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (s *authService) rehashCredential(ctx context.Context, user *models.User, plaintext string) {
	digest, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Warn("credential rehash failed", "user_id", user.ID, "error", err)
		return
	}
	if err := s.repo.User().UpdatePasswordHash(ctx, user.ID, digest); err != nil {
		s.logger.Warn("credential rehash write failed", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = digest
	s.logger.Info("credential rehashed to current scheme", "user_id", user.ID)
}

func (s *authService) discardSession(ctx context.Context, token, reason string) {
	if err := s.repo.Session().Delete(ctx, token); err != nil {
		s.logger.Warn("failed to discard session", "reason", reason, "error", err)
		return
	}
	s.logger.Info("session invalidated", "reason", reason)
}

func (s *authService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", "type", event.Type, "error", err)
	}
}
