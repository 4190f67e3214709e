package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const defaultSessionTTL = 12 * time.Hour

// SessionCloser releases per-session state held outside the session store.
type SessionCloser interface {
	Drop(sessionID string)
}

// AuthService signs admins in through the API and keeps their session in the
// session store. The console token handed to the UI only carries the session id.
type AuthService struct {
	gw         ports.AuthGateway
	sessions   ports.SessionStore
	closer     SessionCloser
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	gw ports.AuthGateway,
	sessions ports.SessionStore,
	closer SessionCloser,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		gw:         gw,
		sessions:   sessions,
		closer:     closer,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// Login verifies credentials with the API, initialises a session and returns
// a signed console token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	apiToken, admin, err := s.gw.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrValidation) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if admin.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     apiToken,
		Admin:     *admin,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.generateToken(sess)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("session_id", sess.ID).Str("admin", admin.Email).Msg("admin signed in")
	return &ports.LoginResult{Token: token, Session: sess}, nil
}

// Resume loads the session and checks it is still usable.
func (s *AuthService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionExpired
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Active(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to delete stale session")
		}
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Logout tears the session down. Listing views held for it are dropped too.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if s.closer != nil {
		s.closer.Drop(sessionID)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("session_id", sessionID).Msg("admin signed out")
	return nil
}

func (s *AuthService) generateToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.ID,
		"sub":   sess.Admin.ID.String(),
		"email": sess.Admin.Email,
		"role":  sess.Admin.Role,
		"iat":   sess.CreatedAt.Unix(),
		"exp":   sess.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
