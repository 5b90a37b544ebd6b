package file

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/domain"

	"github.com/rs/zerolog"
)

const (
	sessionFile = "session.dat"
	keyFile     = "session.key"
)

// SessionStore persists the session as a sealed blob on disk. It
// implements ports.SessionStore.
type SessionStore struct {
	dir    string
	sealer *sealer
	log    zerolog.Logger
}

// NewSessionStore opens (and if needed creates) the session directory.
// Without a configured passphrase the sealing secret comes from a
// generated keyfile next to the session blob.
func NewSessionStore(cfg config.SessionConfig, log zerolog.Logger) (*SessionStore, error) {
	dir := cfg.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "sfa-bank")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	secret := []byte(cfg.Passphrase)
	if len(secret) == 0 {
		var err error
		secret, err = loadOrCreateKey(filepath.Join(dir, keyFile))
		if err != nil {
			return nil, err
		}
	}

	return &SessionStore{
		dir:    dir,
		sealer: newSealer(secret),
		log:    log.With().Str("component", "session_store").Logger(),
	}, nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil && len(key) > 0 {
		return key, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read keyfile: %w", err)
	}

	key = make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write keyfile: %w", err)
	}
	return key, nil
}

// Load returns (nil, nil) when no session has been saved.
func (s *SessionStore) Load() (*domain.Session, error) {
	blob, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	plaintext, err := s.sealer.open(blob)
	if err != nil {
		return nil, fmt.Errorf("unseal session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(plaintext, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Save(session *domain.Session) error {
	plaintext, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	blob, err := s.sealer.seal(plaintext)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, sessionFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	s.log.Debug().Str("path", path).Msg("session saved")
	return nil
}

func (s *SessionStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
