package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	folder, err := s.CreateFolder("Work")
	require.NoError(t, err)
	note, err := s.CreateNote(folder.ID, "x")
	require.NoError(t, err)
	child, err := s.CreateSubPage(note.ID, "child")
	require.NoError(t, err)
	require.NoError(t, s.SetActiveFolder(folder.ID))
	require.NoError(t, s.SetActiveNote(child.ID))

	snap := s.Snapshot()

	restored := New()
	restored.RestoreSnapshot(snap)

	assert.Len(t, restored.Notes(), 2)
	assert.Equal(t, folder.ID, restored.ActiveFolderID())
	assert.Equal(t, child.ID, restored.ActiveNoteID())

	got, err := restored.GetNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID}, got.ChildIDs)
}

func TestRestoreSnapshotRecreatesSentinel(t *testing.T) {
	s := New()
	s.RestoreSnapshot(models.Snapshot{})

	_, err := s.GetFolder(models.AllNotesFolderID)
	assert.NoError(t, err)
	assert.Equal(t, models.AllNotesFolderID, s.ActiveFolderID())
}

func TestRestoreSnapshotFixesDanglingPointers(t *testing.T) {
	s := New()
	s.RestoreSnapshot(models.Snapshot{
		ActiveFolderID: "gone1234",
		ActiveNoteID:   "gone5678",
	})

	assert.Equal(t, models.AllNotesFolderID, s.ActiveFolderID())
	assert.Empty(t, s.ActiveNoteID())
}

func TestRestoreSnapshotDoesNotFireOnChange(t *testing.T) {
	s := New()
	calls := 0
	s.OnChange(func() { calls++ })

	s.RestoreSnapshot(models.Snapshot{})
	assert.Zero(t, calls, "loading must never schedule a save of its own")
}

func TestSetActiveNote(t *testing.T) {
	s := New()
	note, err := s.CreateNote("", "x")
	require.NoError(t, err)

	require.NoError(t, s.SetActiveNote(note.ID))
	assert.Equal(t, note.ID, s.ActiveNoteID())

	require.NoError(t, s.SetActiveNote(""))
	assert.Empty(t, s.ActiveNoteID())

	require.NoError(t, s.DeleteNote(note.ID))
	assert.ErrorIs(t, s.SetActiveNote(note.ID), errors.ErrNoteNotFound)
}

func TestSelectionChangeFiresOnChange(t *testing.T) {
	s := New()
	folder, err := s.CreateFolder("Work")
	require.NoError(t, err)
	note, err := s.CreateNote("", "x")
	require.NoError(t, err)

	calls := 0
	s.OnChange(func() { calls++ })

	require.NoError(t, s.SetActiveNote(note.ID))
	assert.Equal(t, 1, calls, "selection is persisted state, so changing it schedules a save")

	require.NoError(t, s.SetActiveFolder(folder.ID))
	assert.Equal(t, 2, calls)

	// Rejected changes leave the snapshot untouched and stay silent.
	assert.Error(t, s.SetActiveNote("gone1234"))
	assert.Error(t, s.SetActiveFolder("gone5678"))
	assert.Equal(t, 2, calls)
}

func TestSetActiveFolderClearsActiveNote(t *testing.T) {
	s := New()
	folder, err := s.CreateFolder("Work")
	require.NoError(t, err)
	note, err := s.CreateNote("", "x")
	require.NoError(t, err)
	require.NoError(t, s.SetActiveNote(note.ID))

	require.NoError(t, s.SetActiveFolder(folder.ID))
	assert.Empty(t, s.ActiveNoteID())
	assert.Equal(t, folder.ID, s.ActiveFolderID())
}
