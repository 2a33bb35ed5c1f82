package store

import (
	"strings"
	"time"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/utils"
)

// SetSuggestions replaces a note's stored suggestions. It fails with
// ErrNoteNotFound when the note is gone or trashed, which is how stale
// results from a cancelled analysis are rejected. Storing suggestions
// does not bump updatedAt: analysis is metadata, not an edit.
func (s *NoteStore) SetSuggestions(noteID string, suggestions []models.Suggestion) error {
	s.mu.Lock()
	note := s.findNote(noteID)
	if note == nil || note.IsDeleted {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", noteID)
	}
	note.Suggestions = append([]models.Suggestion(nil), suggestions...)
	note.LastAnalyzedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// ApplySuggestion applies a stored suggestion's side effect and marks it
// applied. A tag suggestion runs the tag-add path, a link suggestion
// registers a symmetric link pair, a summary suggestion stores the
// summary text. Task and duplicate suggestions carry no structural side
// effect; applying them only marks them handled.
func (s *NoteStore) ApplySuggestion(noteID, suggestionID string) error {
	s.mu.Lock()
	note := s.findNote(noteID)
	if note == nil || note.IsDeleted {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", noteID)
	}

	var sug *models.Suggestion
	for i := range note.Suggestions {
		if note.Suggestions[i].ID == suggestionID {
			sug = &note.Suggestions[i]
			break
		}
	}
	if sug == nil {
		s.mu.Unlock()
		return errors.ErrSuggestionNotFound.WithContext("suggestionId", suggestionID)
	}

	now := time.Now()
	switch sug.Type {
	case models.SuggestionTag:
		name := strings.TrimSpace(sug.Value)
		if name == "" {
			s.mu.Unlock()
			return errors.ErrEmptyTagName
		}
		if !noteHasTagName(note, name) {
			note.Tags = append(note.Tags, models.NoteTag{
				ID:    utils.NewID(),
				Name:  name,
				Color: models.DefaultTagColor,
			})
			note.UpdatedAt = now
		}

	case models.SuggestionLink:
		if sug.Link == nil {
			s.mu.Unlock()
			return errors.ErrSuggestionNotFound.WithContext("suggestionId", suggestionID)
		}
		target := s.findNote(sug.Link.NoteID)
		if target == nil || target.IsDeleted {
			s.mu.Unlock()
			return errors.ErrNoteNotFound.WithContext("noteId", sug.Link.NoteID)
		}
		// Symmetric: both sides or neither.
		if !contains(note.LinkedNotes, target.ID) {
			note.LinkedNotes = append(note.LinkedNotes, target.ID)
			note.UpdatedAt = now
		}
		if !contains(target.Backlinks, note.ID) {
			target.Backlinks = append(target.Backlinks, note.ID)
			target.UpdatedAt = now
		}

	case models.SuggestionSummary:
		note.AISummary = sug.Value
		note.UpdatedAt = now
	}

	sug.Applied = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// DismissSuggestion drops a suggestion from a note.
func (s *NoteStore) DismissSuggestion(noteID, suggestionID string) error {
	s.mu.Lock()
	note := s.findNote(noteID)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", noteID)
	}
	idx := -1
	for i := range note.Suggestions {
		if note.Suggestions[i].ID == suggestionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return errors.ErrSuggestionNotFound.WithContext("suggestionId", suggestionID)
	}
	note.Suggestions = append(note.Suggestions[:idx], note.Suggestions[idx+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

func noteHasTagName(note *models.Note, name string) bool {
	for _, t := range note.Tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}
