package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/rhythm00111/capella-notes/pkg/markdown"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/store"
	"github.com/rhythm00111/capella-notes/pkg/views"
)

// ListNotesHandler returns non-trashed notes, pinned first then most
// recently updated. Optional query params: folder (folder id, the
// all-notes sentinel when omitted) and q (search in title and content).
func (h *APIHandlers) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder")
	if folderID == "" {
		folderID = models.AllNotesFolderID
	}

	notes := views.NotesByFolder(h.store.Notes(), folderID)
	notes = views.FilterBySearch(notes, r.URL.Query().Get("q"))
	notes = views.SortByRecent(notes)
	writeJSON(w, http.StatusOK, notes)
}

// CreateNoteHandler creates a new note.
func (h *APIHandlers) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folderId"`
		Title    string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.service.CreateNote(req.FolderID, req.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// GetNoteHandler returns a single note by ID, trashed notes included.
func (h *APIHandlers) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.GetNote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateNoteHandler applies a partial update. Absent fields are left
// untouched.
func (h *APIHandlers) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Title    *string           `json:"title"`
		Content  *string           `json:"content"`
		IsPinned *bool             `json:"isPinned"`
		Tags     *[]models.NoteTag `json:"tags"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	upd := store.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		IsPinned: req.IsPinned,
		Tags:     req.Tags,
	}
	if err := h.service.UpdateNote(id, upd); err != nil {
		h.writeError(w, err)
		return
	}

	note, err := h.store.GetNote(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNoteHandler moves a note to trash without touching its sub-pages.
func (h *APIHandlers) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNote(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// DeleteSubPageHandler moves a sub-page and all of its descendants to
// trash.
func (h *APIHandlers) DeleteSubPageHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSubPage(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// CreateSubPageHandler creates a sub-page under the note.
func (h *APIHandlers) CreateSubPageHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.service.CreateSubPage(chi.URLParam(r, "id"), req.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// RestoreNoteHandler brings a note back from trash.
func (h *APIHandlers) RestoreNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RestoreNote(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// PermanentDeleteHandler removes a trashed note for good.
func (h *APIHandlers) PermanentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.PermanentDeleteNote(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// DuplicateNoteHandler copies a note into a fresh top-level note.
func (h *APIHandlers) DuplicateNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.DuplicateNote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// MoveNoteHandler reassigns a note to another folder.
func (h *APIHandlers) MoveNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folderId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.MoveNote(chi.URLParam(r, "id"), req.FolderID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// TogglePinnedHandler flips the pinned flag.
func (h *APIHandlers) TogglePinnedHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.TogglePinned(id); err != nil {
		h.writeError(w, err)
		return
	}
	note, err := h.store.GetNote(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// AddTagHandler attaches a tag to the note. ID and color are filled in
// when omitted.
func (h *APIHandlers) AddTagHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string          `json:"name"`
		Color models.TagColor `json:"color"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.AddTag(id, models.NoteTag{Name: req.Name, Color: req.Color}); err != nil {
		h.writeError(w, err)
		return
	}
	note, err := h.store.GetNote(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note.Tags)
}

// RemoveTagHandler detaches a tag from the note.
func (h *APIHandlers) RemoveTagHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveTag(chi.URLParam(r, "id"), chi.URLParam(r, "tagID")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// AddLinkHandler creates a symmetric link between two notes.
func (h *APIHandlers) AddLinkHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.AddLink(chi.URLParam(r, "id"), chi.URLParam(r, "targetID")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RemoveLinkHandler removes a symmetric link between two notes.
func (h *APIHandlers) RemoveLinkHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveLink(chi.URLParam(r, "id"), chi.URLParam(r, "targetID")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ListTrashHandler returns trashed notes, most recently updated first.
func (h *APIHandlers) ListTrashHandler(w http.ResponseWriter, r *http.Request) {
	trashed := lo.Filter(h.store.Notes(), func(n *models.Note, _ int) bool {
		return n.IsDeleted
	})
	writeJSON(w, http.StatusOK, views.SortByRecent(trashed))
}

// EmptyTrashHandler permanently removes every trashed note.
func (h *APIHandlers) EmptyTrashHandler(w http.ResponseWriter, r *http.Request) {
	h.store.EmptyTrash()
	writeJSON(w, http.StatusNoContent, nil)
}

// GetBlocksHandler returns the note content parsed into editor blocks.
func (h *APIHandlers) GetBlocksHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.GetNote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	blocks := markdown.Parse(note.Content)
	if blocks == nil {
		blocks = []markdown.Block{}
	}
	writeJSON(w, http.StatusOK, blocks)
}

// PutBlocksHandler replaces the note content with the rendered blocks.
func (h *APIHandlers) PutBlocksHandler(w http.ResponseWriter, r *http.Request) {
	var blocks []markdown.Block
	if !decodeBody(w, r, &blocks) {
		return
	}

	content := markdown.Render(blocks)
	if err := h.service.UpdateNote(chi.URLParam(r, "id"), store.NoteUpdate{Content: &content}); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}
