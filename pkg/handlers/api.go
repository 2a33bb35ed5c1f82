// Package handlers exposes the note store over a JSON HTTP API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/services"
	"github.com/rhythm00111/capella-notes/pkg/storage"
	"github.com/rhythm00111/capella-notes/pkg/store"
)

// APIHandlers contains API endpoint handlers.
type APIHandlers struct {
	store   *store.NoteStore
	service *services.NoteService
	saver   *storage.Saver
	log     zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(st *store.NoteStore, service *services.NoteService, saver *storage.Saver, log zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		store:   st,
		service: service,
		saver:   saver,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Router builds the API route tree.
func (h *APIHandlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", h.ListNotesHandler)
		r.Post("/notes", h.CreateNoteHandler)
		r.Get("/notes/{id}", h.GetNoteHandler)
		r.Put("/notes/{id}", h.UpdateNoteHandler)
		r.Delete("/notes/{id}", h.DeleteNoteHandler)
		r.Delete("/notes/{id}/tree", h.DeleteSubPageHandler)
		r.Post("/notes/{id}/subpages", h.CreateSubPageHandler)
		r.Post("/notes/{id}/restore", h.RestoreNoteHandler)
		r.Delete("/notes/{id}/permanent", h.PermanentDeleteHandler)
		r.Post("/notes/{id}/duplicate", h.DuplicateNoteHandler)
		r.Post("/notes/{id}/move", h.MoveNoteHandler)
		r.Post("/notes/{id}/pin", h.TogglePinnedHandler)
		r.Post("/notes/{id}/tags", h.AddTagHandler)
		r.Delete("/notes/{id}/tags/{tagID}", h.RemoveTagHandler)
		r.Post("/notes/{id}/links/{targetID}", h.AddLinkHandler)
		r.Delete("/notes/{id}/links/{targetID}", h.RemoveLinkHandler)
		r.Post("/notes/{id}/analyze", h.AnalyzeHandler)
		r.Delete("/notes/{id}/analyze", h.CancelAnalysisHandler)
		r.Post("/notes/{id}/suggestions/{suggestionID}/apply", h.ApplySuggestionHandler)
		r.Delete("/notes/{id}/suggestions/{suggestionID}", h.DismissSuggestionHandler)
		r.Get("/notes/{id}/breadcrumbs", h.BreadcrumbsHandler)
		r.Get("/notes/{id}/children", h.ChildNotesHandler)
		r.Get("/notes/{id}/blocks", h.GetBlocksHandler)
		r.Put("/notes/{id}/blocks", h.PutBlocksHandler)

		r.Get("/folders", h.ListFoldersHandler)
		r.Post("/folders", h.CreateFolderHandler)
		r.Delete("/folders/{id}", h.DeleteFolderHandler)

		r.Get("/tags", h.AllTagsHandler)
		r.Get("/trash", h.ListTrashHandler)
		r.Delete("/trash", h.EmptyTrashHandler)

		r.Get("/active", h.GetActiveHandler)
		r.Put("/active/note", h.SetActiveNoteHandler)
		r.Put("/active/folder", h.SetActiveFolderHandler)

		r.Get("/sync", h.SyncStateHandler)
		r.Post("/sync", h.FlushHandler)
	})

	return r
}

// requestLogger logs one line per request through the shared logger.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps application errors onto HTTP statuses and emits the
// structured error body.
func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		h.log.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(appErr, errors.ErrNoteNotFound),
		stderrors.Is(appErr, errors.ErrFolderNotFound),
		stderrors.Is(appErr, errors.ErrTagNotFound),
		stderrors.Is(appErr, errors.ErrSuggestionNotFound):
		status = http.StatusNotFound
	case stderrors.Is(appErr, errors.ErrMaxDepthExceeded):
		status = http.StatusConflict
	case appErr.Type == errors.ErrTypeValidation:
		status = http.StatusBadRequest
	case appErr.Type == errors.ErrTypePersistence:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(appErr).Msg("request failed")
	}
	writeJSON(w, status, map[string]interface{}{
		"error":     appErr.GetUserMessage(),
		"code":      appErr.Code,
		"type":      appErr.Type,
		"retryable": appErr.IsRetryable(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}
