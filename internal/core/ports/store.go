package ports

import "sfa-bank-client/internal/core/domain"

// SessionStore persists the session to durable local storage.
// Load returns (nil, nil) when no session has been saved.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(session *domain.Session) error
	Clear() error
}
