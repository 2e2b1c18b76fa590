package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStorage(path)

	_, err := s.Get("authToken")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("authToken", "abc123"))

	got, err := s.Get("authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	// A new instance over the same path sees the value.
	got, err = NewFileStorage(path).Get("authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	require.NoError(t, s.Delete("authToken"))
	_, err = s.Get("authToken")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_DeleteMissingKey(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, s.Delete("authToken"))
}

func TestFileStorage_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStorage(path)
	_, err := s.Get("authToken")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("authToken", "abc"))
	got, err := s.Get("authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestFileStorage_UnwritableDirReportsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	s := NewFileStorage(filepath.Join(dir, "session.json"))
	assert.Error(t, s.Set("authToken", "abc"))
}

func TestMemoryStorage_RoundTrip(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.Get("authToken")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("authToken", "abc"))
	got, err := s.Get("authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, s.Delete("authToken"))
	_, err = s.Get("authToken")
	assert.ErrorIs(t, err, ErrNotFound)
}
