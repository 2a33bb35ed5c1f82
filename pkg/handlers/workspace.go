package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rhythm00111/capella-notes/pkg/views"
)

type folderView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Order     int    `json:"order"`
	NoteCount int    `json:"noteCount"`
}

// ListFoldersHandler returns all folders with their live note counts.
func (h *APIHandlers) ListFoldersHandler(w http.ResponseWriter, r *http.Request) {
	notes := h.store.Notes()
	folders := h.store.Folders()

	out := make([]folderView, 0, len(folders))
	for _, f := range folders {
		out = append(out, folderView{
			ID:        f.ID,
			Name:      f.Name,
			Color:     f.Color,
			Icon:      f.Icon,
			Order:     f.Order,
			NoteCount: views.FolderNoteCount(notes, f.ID),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateFolderHandler creates a folder.
func (h *APIHandlers) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.store.CreateFolder(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// DeleteFolderHandler deletes a folder; its notes move to All Notes.
func (h *APIHandlers) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteFolder(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// AllTagsHandler returns the distinct tags across non-trashed notes.
func (h *APIHandlers) AllTagsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, views.AllTags(h.store.Notes()))
}

// BreadcrumbsHandler returns the ancestry trail of a note, root first.
func (h *APIHandlers) BreadcrumbsHandler(w http.ResponseWriter, r *http.Request) {
	crumbs := views.Breadcrumbs(h.store.Notes(), chi.URLParam(r, "id"), h.store.MaxDepth())
	if crumbs == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}
	writeJSON(w, http.StatusOK, crumbs)
}

// ChildNotesHandler returns a note's direct, non-trashed sub-pages in
// creation order.
func (h *APIHandlers) ChildNotesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, views.ChildNotes(h.store.Notes(), chi.URLParam(r, "id")))
}

// GetActiveHandler returns the current selection.
func (h *APIHandlers) GetActiveHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"noteId":   h.store.ActiveNoteID(),
		"folderId": h.store.ActiveFolderID(),
	})
}

// SetActiveNoteHandler selects a note; an empty id clears the selection.
func (h *APIHandlers) SetActiveNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.store.SetActiveNote(req.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SetActiveFolderHandler selects a folder and clears the note selection.
func (h *APIHandlers) SetActiveFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.store.SetActiveFolder(req.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SyncStateHandler reports the persistence status.
func (h *APIHandlers) SyncStateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.saver.State())
}

// FlushHandler forces an immediate save, skipping the debounce.
func (h *APIHandlers) FlushHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.saver.Flush(); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.saver.State())
}

// AnalyzeHandler starts background suggestion analysis for a note.
func (h *APIHandlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Analyze(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "analyzing"})
}

// CancelAnalysisHandler aborts an in-flight analysis run.
func (h *APIHandlers) CancelAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	h.service.CancelAnalysis(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusNoContent, nil)
}

// ApplySuggestionHandler applies a stored suggestion to its note.
func (h *APIHandlers) ApplySuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.ApplySuggestion(id, chi.URLParam(r, "suggestionID")); err != nil {
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

// DismissSuggestionHandler removes a suggestion without applying it.
func (h *APIHandlers) DismissSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DismissSuggestion(chi.URLParam(r, "id"), chi.URLParam(r, "suggestionID")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
