package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/storage"
)

type brokenStorage struct{}

func (brokenStorage) Get(string) (string, error)  { return "", errors.New("access denied") }
func (brokenStorage) Set(string, string) error    { return errors.New("access denied") }
func (brokenStorage) Delete(string) error         { return errors.New("access denied") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_LoginLogout(t *testing.T) {
	st := storage.NewMemoryStorage()
	s := NewStore(st, testLogger())

	assert.False(t, s.Authenticated())

	s.Login("token-1")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "token-1", s.Token())

	persisted, err := st.Get("authToken")
	require.NoError(t, err)
	assert.Equal(t, "token-1", persisted)

	s.Logout()
	assert.False(t, s.Authenticated())
	_, err = st.Get("authToken")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RestoreFindsSavedToken(t *testing.T) {
	st := storage.NewMemoryStorage()
	require.NoError(t, st.Set("authToken", "saved-token"))

	s := NewStore(st, testLogger())
	s.Restore()

	assert.True(t, s.Authenticated())
	assert.Equal(t, "saved-token", s.Token())
}

func TestStore_RestoreWithNothingSaved(t *testing.T) {
	s := NewStore(storage.NewMemoryStorage(), testLogger())
	s.Restore()
	assert.False(t, s.Authenticated())
}

func TestStore_StorageFailureDegradesToNoPersistence(t *testing.T) {
	s := NewStore(brokenStorage{}, testLogger())

	// Restore never panics or errors out.
	s.Restore()
	assert.False(t, s.Authenticated())

	// Login still authenticates in memory.
	s.Login("token-1")
	assert.True(t, s.Authenticated())

	// Logout still clears the session.
	s.Logout()
	assert.False(t, s.Authenticated())
}
