package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/store"
)

// countingBlob wraps MemoryBlobStore and counts saves.
type countingBlob struct {
	MemoryBlobStore
	mu    sync.Mutex
	saves int
}

func (c *countingBlob) Save(data []byte) error {
	c.mu.Lock()
	c.saves++
	c.mu.Unlock()
	return c.MemoryBlobStore.Save(data)
}

func (c *countingBlob) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

// failingBlob fails saves until fixed.
type failingBlob struct {
	MemoryBlobStore
	mu     sync.Mutex
	broken bool
}

func (f *failingBlob) Save(data []byte) error {
	f.mu.Lock()
	broken := f.broken
	f.mu.Unlock()
	if broken {
		return fmt.Errorf("disk full")
	}
	return f.MemoryBlobStore.Save(data)
}

func (f *failingBlob) setBroken(broken bool) {
	f.mu.Lock()
	f.broken = broken
	f.mu.Unlock()
}

func TestSaverCoalescesBurst(t *testing.T) {
	st := store.New()
	blob := &countingBlob{}
	saver := NewSaver(st, blob, 50*time.Millisecond, zerolog.Nop())

	note, err := st.CreateNote("", "x")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		content := fmt.Sprintf("keystroke %d", i)
		require.NoError(t, st.UpdateNote(note.ID, store.NoteUpdate{Content: &content}))
	}

	assert.Equal(t, SyncPending, saver.State().Status)

	require.Eventually(t, func() bool {
		return saver.State().Status == SyncSaved
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, blob.saveCount(), "a burst of edits coalesces into one write")

	data, err := blob.Load()
	require.NoError(t, err)
	assert.Contains(t, string(data), "keystroke 4", "the write carries the final state")
}

func TestSaverFlushSkipsDebounce(t *testing.T) {
	st := store.New()
	blob := &countingBlob{}
	saver := NewSaver(st, blob, time.Hour, zerolog.Nop())

	_, err := st.CreateNote("", "x")
	require.NoError(t, err)
	require.Equal(t, SyncPending, saver.State().Status)

	require.NoError(t, saver.Flush())
	assert.Equal(t, SyncSaved, saver.State().Status)
	assert.Equal(t, 1, blob.saveCount())
	assert.False(t, saver.State().LastSaved.IsZero())
}

func TestSaverDegradedOnFailureThenRecovers(t *testing.T) {
	st := store.New()
	blob := &failingBlob{}
	blob.setBroken(true)
	saver := NewSaver(st, blob, time.Hour, zerolog.Nop())

	_, err := st.CreateNote("", "x")
	require.NoError(t, err)

	err = saver.Flush()
	assert.ErrorIs(t, err, errors.ErrSnapshotSaveFailed)

	state := saver.State()
	assert.Equal(t, SyncDegraded, state.Status)
	assert.NotEmpty(t, state.LastError)

	// The note is still there: a failed save never loses memory state.
	assert.Len(t, st.Notes(), 1)

	blob.setBroken(false)
	require.NoError(t, saver.Flush())
	assert.Equal(t, SyncSaved, saver.State().Status)
}

func TestSaverLoadFirstRun(t *testing.T) {
	st := store.New()
	saver := NewSaver(st, NewMemoryBlobStore(), time.Hour, zerolog.Nop())

	require.NoError(t, saver.Load())
	assert.Empty(t, st.Notes())
}

func TestSaverLoadRoundTrip(t *testing.T) {
	src := store.New()
	blob := NewMemoryBlobStore()
	saver := NewSaver(src, blob, time.Hour, zerolog.Nop())

	folder, err := src.CreateFolder("Work")
	require.NoError(t, err)
	note, err := src.CreateNote(folder.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, saver.Flush())

	dst := store.New()
	loader := NewSaver(dst, blob, time.Hour, zerolog.Nop())
	require.NoError(t, loader.Load())

	got, err := dst.GetNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, folder.ID, got.FolderID)
	assert.Equal(t, SyncSaved, loader.State().Status, "loading is not a pending change")
}

func TestSaverPersistsSelectionChange(t *testing.T) {
	st := store.New()
	blob := &countingBlob{}
	saver := NewSaver(st, blob, 20*time.Millisecond, zerolog.Nop())

	a, err := st.CreateNote("", "a")
	require.NoError(t, err)
	b, err := st.CreateNote("", "b")
	require.NoError(t, err)
	require.NoError(t, st.SetActiveNote(b.ID))
	require.NoError(t, saver.Flush())

	// Moving the selection alone must reach disk without further edits.
	require.NoError(t, st.SetActiveNote(a.ID))
	require.Equal(t, SyncPending, saver.State().Status)

	require.Eventually(t, func() bool {
		return saver.State().Status == SyncSaved
	}, time.Second, 10*time.Millisecond)

	data, err := blob.Load()
	require.NoError(t, err)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, a.ID, snap.ActiveNoteID)
}

func TestSaverConcurrentFlushes(t *testing.T) {
	st := store.New()
	blob := &countingBlob{}
	saver := NewSaver(st, blob, time.Millisecond, zerolog.Nop())

	note, err := st.CreateNote("", "x")
	require.NoError(t, err)

	// Debounce timers and explicit flushes racing must still produce
	// whole, decodable snapshots.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := fmt.Sprintf("edit %d", i)
			_ = st.UpdateNote(note.ID, store.NoteUpdate{Content: &content})
			_ = saver.Flush()
		}(i)
	}
	wg.Wait()

	require.NoError(t, saver.Flush())
	data, err := blob.Load()
	require.NoError(t, err)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Notes, 1)
}

func TestSaverApplyRejectsGarbage(t *testing.T) {
	st := store.New()
	saver := NewSaver(st, NewMemoryBlobStore(), time.Hour, zerolog.Nop())

	note, err := st.CreateNote("", "keep me")
	require.NoError(t, err)

	err = saver.Apply([]byte("{not json"))
	assert.ErrorIs(t, err, errors.ErrSnapshotLoadFailed)

	// Invalid external data must not clobber the store.
	_, err = st.GetNote(note.ID)
	assert.NoError(t, err)
}
