package store

import (
	"strings"
	"time"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/utils"
)

// CreateFolder appends a folder at the end of the sibling order.
func (s *NoteStore) CreateFolder(name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrEmptyFolderName
	}

	s.mu.Lock()
	order := 0
	for _, f := range s.folders {
		if f.Order >= order {
			order = f.Order + 1
		}
	}
	folder := &models.Folder{
		ID:        utils.NewID(),
		Name:      name,
		Color:     models.DefaultFolderColor,
		Icon:      models.DefaultFolderIcon,
		CreatedAt: time.Now(),
		Order:     order,
	}
	s.folders = append(s.folders, folder)
	result := *folder
	s.mu.Unlock()

	s.notify()
	return &result, nil
}

// DeleteFolder removes a folder and reassigns its notes to the
// "All Notes" sentinel. Deleting the sentinel itself is a no-op. Notes
// are never deleted by folder deletion.
func (s *NoteStore) DeleteFolder(id string) error {
	if id == models.AllNotesFolderID {
		return nil
	}

	s.mu.Lock()
	idx := -1
	for i, f := range s.folders {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return errors.ErrFolderNotFound.WithContext("folderId", id)
	}

	now := time.Now()
	for _, n := range s.notes {
		if n.FolderID == id {
			n.FolderID = models.AllNotesFolderID
			n.UpdatedAt = now
		}
	}
	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)
	if s.activeFolderID == id {
		s.activeFolderID = models.AllNotesFolderID
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// GetFolder returns a copy of a folder.
func (s *NoteStore) GetFolder(id string) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder := s.findFolder(id)
	if folder == nil {
		return nil, errors.ErrFolderNotFound.WithContext("folderId", id)
	}
	result := *folder
	return &result, nil
}

// Folders returns copies of all folders in sibling order.
func (s *NoteStore) Folders() []*models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		c := *f
		result = append(result, &c)
	}
	return result
}
