// Package store owns the canonical note and folder collections and every
// mutation over them. A NoteStore is an explicit instance: construct one
// per app (or per test) and pass it around, there is no package state.
//
// The mutation model is single-writer: operations run to completion under
// the store lock, so a cascade such as DeleteSubPage is atomic from any
// reader's point of view. All returned notes and folders are deep copies;
// internal state changes only through store operations.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/utils"
)

// DefaultMaxSubPageDepth is the nesting bound for sub-pages.
const DefaultMaxSubPageDepth = 3

// DefaultTitle is stored when a note is created without a title.
const DefaultTitle = "Untitled"

// NoteStore manages notes, folders and the active-note/folder pointers.
type NoteStore struct {
	mu       sync.RWMutex
	notes    []*models.Note // head of the slice is the most recent creation
	folders  []*models.Folder
	maxDepth int

	activeFolderID string
	activeNoteID   string

	onChange func()
}

// New creates a store containing only the "All Notes" sentinel folder.
func New() *NoteStore {
	return NewWithMaxDepth(DefaultMaxSubPageDepth)
}

// NewWithMaxDepth creates a store with a custom sub-page nesting bound.
func NewWithMaxDepth(maxDepth int) *NoteStore {
	if maxDepth < 1 {
		maxDepth = DefaultMaxSubPageDepth
	}
	return &NoteStore{
		folders:        []*models.Folder{models.AllNotesFolder()},
		maxDepth:       maxDepth,
		activeFolderID: models.AllNotesFolderID,
	}
}

// MaxDepth returns the sub-page nesting bound.
func (s *NoteStore) MaxDepth() int {
	return s.maxDepth
}

// OnChange registers a hook fired after every successful mutation, after
// the store lock is released. Used to schedule debounced persistence.
func (s *NoteStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *NoteStore) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// findNote returns the note with the given id, deleted or not. Caller
// must hold the lock.
func (s *NoteStore) findNote(id string) *models.Note {
	if id == "" {
		return nil
	}
	for _, n := range s.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// findFolder returns the folder with the given id. Caller must hold the
// lock.
func (s *NoteStore) findFolder(id string) *models.Folder {
	for _, f := range s.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// noteDepth counts ancestor hops, capped so a corrupted cycle terminates.
// Caller must hold the lock.
func (s *NoteStore) noteDepth(id string) int {
	depth := 0
	current := s.findNote(id)
	for current != nil && current.ParentID != "" && depth <= s.maxDepth {
		depth++
		current = s.findNote(current.ParentID)
	}
	return depth
}

// CreateNote allocates a new note at the head of the collection and makes
// it the active note. An empty folderID means the currently active
// folder; an empty title defaults to "Untitled".
func (s *NoteStore) CreateNote(folderID, title string) (*models.Note, error) {
	s.mu.Lock()
	if folderID == "" {
		folderID = s.activeFolderID
	}
	if s.findFolder(folderID) == nil {
		s.mu.Unlock()
		return nil, errors.ErrFolderNotFound.WithContext("folderId", folderID)
	}
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now()
	note := &models.Note{
		ID:        utils.NewID(),
		Title:     title,
		FolderID:  folderID,
		Tags:      []models.NoteTag{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]*models.Note{note}, s.notes...)
	s.activeNoteID = note.ID
	result := note.Clone()
	s.mu.Unlock()

	s.notify()
	return result, nil
}

// CreateSubPage creates a note nested under parentID. It inherits the
// parent's folder, is appended to the parent's child order, and becomes
// the active note. Fails with ErrMaxDepthExceeded when the parent is
// already at the nesting bound.
func (s *NoteStore) CreateSubPage(parentID, title string) (*models.Note, error) {
	s.mu.Lock()
	parent := s.findNote(parentID)
	if parent == nil || parent.IsDeleted {
		s.mu.Unlock()
		return nil, errors.ErrNoteNotFound.WithContext("noteId", parentID)
	}
	if s.noteDepth(parentID) >= s.maxDepth {
		s.mu.Unlock()
		return nil, errors.ErrMaxDepthExceeded.WithContext("noteId", parentID)
	}
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now()
	child := &models.Note{
		ID:        utils.NewID(),
		Title:     title,
		FolderID:  parent.FolderID,
		Tags:      []models.NoteTag{},
		ParentID:  parent.ID,
		IsSubPage: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]*models.Note{child}, s.notes...)
	parent.ChildIDs = append(parent.ChildIDs, child.ID)
	parent.UpdatedAt = now
	s.activeNoteID = child.ID
	result := child.Clone()
	s.mu.Unlock()

	s.notify()
	return result, nil
}

// NoteUpdate carries the fields UpdateNote may change. Nil fields are
// left untouched. Identity, hierarchy, folder and deletion state have
// dedicated operations and cannot be changed here.
type NoteUpdate struct {
	Title    *string
	Content  *string
	IsPinned *bool
	Tags     *[]models.NoteTag
}

// UpdateNote merges the non-nil fields of upd into the note. Assigned
// tags are deduplicated by ID, first occurrence wins.
func (s *NoteStore) UpdateNote(id string, upd NoteUpdate) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}

	if upd.Title != nil {
		note.Title = *upd.Title
	}
	if upd.Content != nil {
		note.Content = *upd.Content
	}
	if upd.IsPinned != nil {
		note.IsPinned = *upd.IsPinned
	}
	if upd.Tags != nil {
		tags := make([]models.NoteTag, 0, len(*upd.Tags))
		seen := make(map[string]bool, len(*upd.Tags))
		for _, t := range *upd.Tags {
			if !t.Color.Valid() {
				s.mu.Unlock()
				return errors.ErrInvalidTagColor.WithContext("color", string(t.Color))
			}
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			tags = append(tags, t)
		}
		note.Tags = tags
	}
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteNote soft-deletes a note. It deliberately does not cascade to
// children: trashing a parent alone keeps the sub-page structure
// recoverable. Use DeleteSubPage for the cascading variant.
func (s *NoteStore) DeleteNote(id string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	note.IsDeleted = true
	note.UpdatedAt = time.Now()
	if s.activeNoteID == id {
		s.activeNoteID = ""
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// descendants walks childIds transitively. Caller must hold the lock.
func (s *NoteStore) descendants(id string) []string {
	note := s.findNote(id)
	if note == nil {
		return nil
	}
	var ids []string
	for _, childID := range note.ChildIDs {
		ids = append(ids, childID)
		ids = append(ids, s.descendants(childID)...)
	}
	return ids
}

// DeleteSubPage soft-deletes a sub-page and all of its descendants,
// removes it from its parent's child order, and moves the active pointer
// to the parent when the active note was among the deleted set. The
// cascade is applied atomically under the store lock.
func (s *NoteStore) DeleteSubPage(id string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}

	now := time.Now()
	deleted := map[string]bool{id: true}
	for _, descID := range s.descendants(id) {
		deleted[descID] = true
	}
	for delID := range deleted {
		if n := s.findNote(delID); n != nil {
			n.IsDeleted = true
			n.UpdatedAt = now
		}
	}

	if parent := s.findNote(note.ParentID); parent != nil {
		kept := parent.ChildIDs[:0]
		for _, childID := range parent.ChildIDs {
			if childID != id {
				kept = append(kept, childID)
			}
		}
		parent.ChildIDs = kept
		parent.UpdatedAt = now
	}

	if deleted[s.activeNoteID] {
		s.activeNoteID = note.ParentID
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RestoreNote clears the deletion flag. A child restored while its parent
// is still trashed stays orphaned-but-visible until the parent is also
// restored; it is not re-attached automatically.
func (s *NoteStore) RestoreNote(id string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	note.IsDeleted = false
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// PermanentDeleteNote removes the note from the collection entirely.
// Dangling childIds/parentId references in surviving relatives are left
// as-is; callers are expected to empty the trash for bulk cleanup or
// operate on leaf notes.
func (s *NoteStore) PermanentDeleteNote(id string) error {
	s.mu.Lock()
	idx := -1
	for i, n := range s.notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	if s.activeNoteID == id {
		s.activeNoteID = ""
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// EmptyTrash removes every soft-deleted note in one pass.
func (s *NoteStore) EmptyTrash() {
	s.mu.Lock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if !n.IsDeleted {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	if s.findNote(s.activeNoteID) == nil {
		s.activeNoteID = ""
	}
	s.mu.Unlock()

	s.notify()
}

// DuplicateNote copies a note's title, content, folder, tags and summary
// into a fresh note. Identity, timestamps, pin state, hierarchy, links
// and suggestions are not carried over: a duplicate is always a
// top-level, unpinned note.
func (s *NoteStore) DuplicateNote(id string) (*models.Note, error) {
	s.mu.Lock()
	src := s.findNote(id)
	if src == nil {
		s.mu.Unlock()
		return nil, errors.ErrNoteNotFound.WithContext("noteId", id)
	}

	now := time.Now()
	dup := &models.Note{
		ID:        utils.NewID(),
		Title:     src.Title,
		Content:   src.Content,
		FolderID:  src.FolderID,
		Tags:      append([]models.NoteTag(nil), src.Tags...),
		AISummary: src.AISummary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]*models.Note{dup}, s.notes...)
	result := dup.Clone()
	s.mu.Unlock()

	s.notify()
	return result, nil
}

// MoveNote reassigns a note to another folder.
func (s *NoteStore) MoveNote(id, folderID string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	if s.findFolder(folderID) == nil {
		s.mu.Unlock()
		return errors.ErrFolderNotFound.WithContext("folderId", folderID)
	}
	note.FolderID = folderID
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// TogglePinned flips a note's pin state.
func (s *NoteStore) TogglePinned(id string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	note.IsPinned = !note.IsPinned
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// AddTag attaches a tag to a note. Duplicate tag IDs are suppressed. A
// tag without an ID gets a fresh one; a tag without a color gets the
// default.
func (s *NoteStore) AddTag(id string, tag models.NoteTag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return errors.ErrEmptyTagName
	}
	if tag.ID == "" {
		tag.ID = utils.NewID()
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	if !tag.Color.Valid() {
		return errors.ErrInvalidTagColor.WithContext("color", string(tag.Color))
	}

	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	if note.HasTag(tag.ID) {
		s.mu.Unlock()
		return nil
	}
	note.Tags = append(note.Tags, tag)
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveTag detaches a tag from a note.
func (s *NoteStore) RemoveTag(id, tagID string) error {
	s.mu.Lock()
	note := s.findNote(id)
	if note == nil {
		s.mu.Unlock()
		return errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	if !note.HasTag(tagID) {
		s.mu.Unlock()
		return errors.ErrTagNotFound.WithContext("tagId", tagID)
	}
	kept := note.Tags[:0]
	for _, t := range note.Tags {
		if t.ID != tagID {
			kept = append(kept, t)
		}
	}
	note.Tags = kept
	note.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.notify()
	return nil
}
