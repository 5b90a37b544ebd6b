package service

import (
	"sync"
	"time"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// SessionService owns the in-memory session and keeps it in sync with
// the persistent store. It implements ports.TokenSource for the API
// client. Safe for concurrent use.
type SessionService struct {
	store ports.SessionStore
	log   zerolog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

func NewSessionService(store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		store: store,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// Hydrate restores a previously saved session at startup. A corrupt or
// unreadable session is cleared and the client starts anonymous; that is
// not an error.
func (s *SessionService) Hydrate() error {
	session, err := s.store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("stored session unreadable, clearing")
		if clearErr := s.store.Clear(); clearErr != nil {
			return clearErr
		}
		return nil
	}
	if session == nil || !session.Authenticated() {
		return nil
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	s.log.Debug().Str("username", session.User.Username).Msg("session restored")
	return nil
}

// Establish installs a fresh session after login or registration and
// persists it.
func (s *SessionService) Establish(user domain.User, token string) error {
	session := &domain.Session{User: user, Token: token}
	if err := s.store.Save(session); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	return nil
}

// Logout drops the session from memory and from the store.
func (s *SessionService) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// UpdateUser merges a partial profile edit into the session and persists
// the result.
func (s *SessionService) UpdateUser(update domain.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return apperror.ErrNotAuthenticated()
	}
	updated := *s.current
	updated.Apply(update)
	if err := s.store.Save(&updated); err != nil {
		return err
	}
	s.current = &updated
	return nil
}

// User returns the signed-in profile, zero when anonymous.
func (s *SessionService) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}
	}
	return s.current.User
}

// Token implements ports.TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authenticated reports whether a live session is present. A JWT with a
// past exp claim does not count; opaque tokens are taken at face value.
func (s *SessionService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.current.Authenticated() {
		return false
	}
	return !tokenExpired(s.current.Token)
}

// RequireAuth gates protected operations. It distinguishes a missing
// session from an expired one so the screens can say which happened.
func (s *SessionService) RequireAuth() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.current.Authenticated() {
		return apperror.ErrNotAuthenticated()
	}
	if tokenExpired(s.current.Token) {
		return apperror.ErrSessionExpired()
	}
	return nil
}

// tokenExpired inspects the exp claim without verifying the signature;
// verification is the server's job. Tokens that do not parse as JWTs or
// carry no exp claim never expire client-side.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
