// Package services sits between the transport layer and the note store:
// it validates input, wraps store errors with request context, and owns
// the background suggestion analysis lifecycle.
package services

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/store"
	"github.com/rhythm00111/capella-notes/pkg/suggest"
)

// MaxTitleLength caps note titles.
const MaxTitleLength = 100

// NoteService validates and executes note operations against the store.
type NoteService struct {
	store    *store.NoteStore
	provider suggest.Provider
	log      zerolog.Logger

	mu      sync.Mutex
	pending map[string]*analysisRun
}

type analysisRun struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewNoteService creates a note service.
func NewNoteService(st *store.NoteStore, provider suggest.Provider, log zerolog.Logger) *NoteService {
	return &NoteService{
		store:    st,
		provider: provider,
		log:      log.With().Str("component", "note-service").Logger(),
		pending:  make(map[string]*analysisRun),
	}
}

// Store exposes the underlying store for read paths.
func (s *NoteService) Store() *store.NoteStore {
	return s.store
}

func validateTitle(title string) error {
	if len(title) > MaxTitleLength {
		return errors.ErrTitleTooLong.WithContext("length", len(title)).
			WithContext("max", MaxTitleLength)
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.ErrEmptyID
	}
	return nil
}

// CreateNote creates a note in folderID, or the active folder when
// folderID is empty.
func (s *NoteService) CreateNote(folderID, title string) (*models.Note, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	note, err := s.store.CreateNote(folderID, title)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("note", note.ID).Str("folder", note.FolderID).Msg("note created")
	return note, nil
}

// CreateSubPage creates a sub-page under parentID.
func (s *NoteService) CreateSubPage(parentID, title string) (*models.Note, error) {
	if err := validateID(parentID); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	note, err := s.store.CreateSubPage(parentID, title)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("note", note.ID).Str("parent", parentID).Msg("sub-page created")
	return note, nil
}

// UpdateNote applies a partial update to a note.
func (s *NoteService) UpdateNote(id string, upd store.NoteUpdate) error {
	if err := validateID(id); err != nil {
		return err
	}
	if upd.Title != nil {
		if err := validateTitle(*upd.Title); err != nil {
			return err
		}
	}
	return s.store.UpdateNote(id, upd)
}

// DeleteNote moves a note to trash. Any in-flight analysis for it is
// cancelled so stale results cannot land on a trashed note.
func (s *NoteService) DeleteNote(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	s.CancelAnalysis(id)
	return s.store.DeleteNote(id)
}

// DeleteSubPage trashes a sub-page together with its descendants.
func (s *NoteService) DeleteSubPage(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	s.CancelAnalysis(id)
	return s.store.DeleteSubPage(id)
}

// RestoreNote brings a note back from trash.
func (s *NoteService) RestoreNote(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.store.RestoreNote(id)
}

// PermanentDeleteNote removes a trashed note for good.
func (s *NoteService) PermanentDeleteNote(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	s.CancelAnalysis(id)
	return s.store.PermanentDeleteNote(id)
}

// DuplicateNote copies a note's content into a fresh top-level note.
func (s *NoteService) DuplicateNote(id string) (*models.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DuplicateNote(id)
}

// MoveNote reassigns a note to another folder.
func (s *NoteService) MoveNote(id, folderID string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateID(folderID); err != nil {
		return err
	}
	return s.store.MoveNote(id, folderID)
}
