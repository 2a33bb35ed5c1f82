package store

import (
	"time"

	"github.com/rhythm00111/capella-notes/pkg/errors"
)

// AddLink registers a link pair: fromID gains a forward link to toID and
// toID gains a backlink to fromID. This is the one operation where a
// mutation addressed to one note touches another; it is applied to both
// notes or neither. Linking a note to itself is a no-op.
func (s *NoteStore) AddLink(fromID, toID string) error {
	if fromID == toID {
		return nil
	}

	s.mu.Lock()
	from := s.findNote(fromID)
	to := s.findNote(toID)
	if from == nil || from.IsDeleted {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", fromID)
	}
	if to == nil || to.IsDeleted {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", toID)
	}

	now := time.Now()
	if !contains(from.LinkedNotes, toID) {
		from.LinkedNotes = append(from.LinkedNotes, toID)
		from.UpdatedAt = now
	}
	if !contains(to.Backlinks, fromID) {
		to.Backlinks = append(to.Backlinks, fromID)
		to.UpdatedAt = now
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveLink removes both directions of a link pair.
func (s *NoteStore) RemoveLink(fromID, toID string) error {
	s.mu.Lock()
	from := s.findNote(fromID)
	to := s.findNote(toID)
	if from == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", fromID)
	}
	if to == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", toID)
	}

	now := time.Now()
	if contains(from.LinkedNotes, toID) {
		from.LinkedNotes = remove(from.LinkedNotes, toID)
		from.UpdatedAt = now
	}
	if contains(to.Backlinks, fromID) {
		to.Backlinks = remove(to.Backlinks, fromID)
		to.UpdatedAt = now
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
