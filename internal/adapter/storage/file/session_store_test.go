package file

import (
	"os"
	"path/filepath"
	"testing"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, passphrase string) (*SessionStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewSessionStore(config.SessionConfig{Dir: dir, Passphrase: passphrase}, logger.NewWithWriter("error", nil))
	require.NoError(t, err)
	return store, dir
}

func sampleSession() *domain.Session {
	return &domain.Session{
		User: domain.User{
			ID:       "u1",
			Username: "jdoe",
			Email:    "jane@example.com",
			FullName: "Jane Doe",
		},
		Token: "tok-abc",
	}
}

func TestSessionStore_LoadWithoutSave(t *testing.T) {
	store, _ := testStore(t, "")

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionStore_SaveThenLoad(t *testing.T) {
	store, _ := testStore(t, "")

	require.NoError(t, store.Save(sampleSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "jdoe", loaded.User.Username)
	assert.Equal(t, "tok-abc", loaded.Token)
}

func TestSessionStore_Clear(t *testing.T) {
	store, _ := testStore(t, "")

	require.NoError(t, store.Save(sampleSession()))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}

func TestSessionStore_BlobIsSealed(t *testing.T) {
	store, dir := testStore(t, "")

	require.NoError(t, store.Save(sampleSession()))

	blob, err := os.ReadFile(filepath.Join(dir, sessionFile))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "tok-abc")
	assert.NotContains(t, string(blob), "jane@example.com")
}

func TestSessionStore_PassphraseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SessionConfig{Dir: dir, Passphrase: "correct horse"}
	log := logger.NewWithWriter("error", nil)

	store, err := NewSessionStore(cfg, log)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSession()))

	// A fresh store with the same passphrase reads the session back.
	reopened, err := NewSessionStore(cfg, log)
	require.NoError(t, err)
	loaded, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.User.ID)

	// The wrong passphrase does not.
	wrong, err := NewSessionStore(config.SessionConfig{Dir: dir, Passphrase: "wrong"}, log)
	require.NoError(t, err)
	_, err = wrong.Load()
	assert.Error(t, err)
}

func TestSessionStore_KeyfilePersists(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewWithWriter("error", nil)

	store, err := NewSessionStore(config.SessionConfig{Dir: dir}, log)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleSession()))

	// A fresh store picks up the generated keyfile.
	reopened, err := NewSessionStore(config.SessionConfig{Dir: dir}, log)
	require.NoError(t, err)
	loaded, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "jdoe", loaded.User.Username)
}

func TestSealer_CorruptBlob(t *testing.T) {
	s := newSealer([]byte("secret"))

	blob, err := s.seal([]byte("payload"))
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = s.open(blob)
	assert.Error(t, err)

	_, err = s.open([]byte("short"))
	assert.Error(t, err)
}
