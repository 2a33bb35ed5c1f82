package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileBlobStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	s, err := NewFileBlobStore(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileBlobStoreRoundTrip(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Save([]byte(`{"notes":[]}`)))

	data, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"notes":[]}`, string(data))
}

func TestFileBlobStoreLoadMissing(t *testing.T) {
	s := newTestFileStore(t)

	data, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, data, "a missing snapshot is a first run, not an error")
}

func TestFileBlobStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "notes.json")
	s, err := NewFileBlobStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileBlobStoreSaveOverwrites(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Save([]byte("one")))
	require.NoError(t, s.Save([]byte("two")))

	data, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
