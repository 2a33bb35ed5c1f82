package store

import (
	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
)

// GetNote returns a copy of a note. Trashed notes stay addressable here
// so they can be restored or permanently deleted.
func (s *NoteStore) GetNote(id string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note := s.findNote(id)
	if note == nil {
		return nil, errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	return note.Clone(), nil
}

// Notes returns copies of every note, trashed ones included, in
// collection order (most recent creation first). Derived views do the
// filtering.
func (s *NoteStore) Notes() []*models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		result = append(result, n.Clone())
	}
	return result
}

// ActiveNoteID returns the active-note pointer, empty when none.
func (s *NoteStore) ActiveNoteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeNoteID
}

// ActiveFolderID returns the active-folder pointer.
func (s *NoteStore) ActiveFolderID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFolderID
}

// SetActiveNote moves the active-note pointer. An empty id clears it.
// The pointer is part of the snapshot, so a change schedules a save.
func (s *NoteStore) SetActiveNote(id string) error {
	s.mu.Lock()
	if id != "" {
		note := s.findNote(id)
		if note == nil || note.IsDeleted {
			s.mu.Unlock()
			return errors.ErrNoteNotFound.WithContext("noteId", id)
		}
	}
	s.activeNoteID = id
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetActiveFolder moves the active-folder pointer and clears the active
// note, mirroring a folder navigation in the UI.
func (s *NoteStore) SetActiveFolder(id string) error {
	s.mu.Lock()
	if s.findFolder(id) == nil {
		s.mu.Unlock()
		return errors.ErrFolderNotFound.WithContext("folderId", id)
	}
	s.activeFolderID = id
	s.activeNoteID = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// Snapshot exports a deep copy of the persistable state.
func (s *NoteStore) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Notes:          make([]*models.Note, 0, len(s.notes)),
		Folders:        make([]*models.Folder, 0, len(s.folders)),
		ActiveFolderID: s.activeFolderID,
		ActiveNoteID:   s.activeNoteID,
	}
	for _, n := range s.notes {
		snap.Notes = append(snap.Notes, n.Clone())
	}
	for _, f := range s.folders {
		c := *f
		snap.Folders = append(snap.Folders, &c)
	}
	return snap
}

// RestoreSnapshot replaces the store state with a loaded snapshot. The
// "All Notes" sentinel is re-created if the snapshot lacks it and the
// active-folder pointer falls back to it when dangling. Restoring does
// not fire the change hook, so loading never schedules a save of its own.
func (s *NoteStore) RestoreSnapshot(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make([]*models.Note, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		s.notes = append(s.notes, n.Clone())
	}

	s.folders = make([]*models.Folder, 0, len(snap.Folders)+1)
	hasSentinel := false
	for _, f := range snap.Folders {
		if f.ID == models.AllNotesFolderID {
			hasSentinel = true
		}
		c := *f
		s.folders = append(s.folders, &c)
	}
	if !hasSentinel {
		s.folders = append([]*models.Folder{models.AllNotesFolder()}, s.folders...)
	}

	s.activeFolderID = snap.ActiveFolderID
	if s.findFolder(s.activeFolderID) == nil {
		s.activeFolderID = models.AllNotesFolderID
	}
	s.activeNoteID = snap.ActiveNoteID
	if note := s.findNote(s.activeNoteID); note == nil || note.IsDeleted {
		s.activeNoteID = ""
	}
}
