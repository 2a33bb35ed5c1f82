package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/services"
	"github.com/rhythm00111/capella-notes/pkg/storage"
	"github.com/rhythm00111/capella-notes/pkg/store"
	"github.com/rhythm00111/capella-notes/pkg/suggest"
)

type testAPI struct {
	srv   *httptest.Server
	store *store.NoteStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st := store.New()
	saver := storage.NewSaver(st, storage.NewMemoryBlobStore(), time.Hour, zerolog.Nop())
	svc := services.NewNoteService(st, suggest.NewHeuristicProviderWithDelay(0, 0), zerolog.Nop())
	t.Cleanup(svc.Close)

	h := NewAPIHandlers(st, svc, saver, zerolog.Nop())
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return &testAPI{srv: srv, store: st}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestCreateAndListNotes(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/notes", map[string]string{"title": "Groceries"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Note
	decode(t, resp, &created)
	assert.Equal(t, "Groceries", created.Title)
	assert.NotEmpty(t, created.ID)

	resp = api.do(t, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notes []models.Note
	decode(t, resp, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)
}

func TestGetNoteNotFound(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/api/notes/deadbeef", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "NOTE_NOT_FOUND", body["code"])
}

func TestUpdateNotePartial(t *testing.T) {
	api := newTestAPI(t)
	note, err := api.store.CreateNote("", "Title")
	require.NoError(t, err)

	resp := api.do(t, http.MethodPut, "/api/notes/"+note.ID, map[string]string{"content": "body"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Note
	decode(t, resp, &updated)
	assert.Equal(t, "Title", updated.Title)
	assert.Equal(t, "body", updated.Content)
}

func TestInvalidJSONBody(t *testing.T) {
	api := newTestAPI(t)

	req, err := http.NewRequest(http.MethodPost, api.srv.URL+"/api/notes", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubPageDepthConflict(t *testing.T) {
	api := newTestAPI(t)
	root, err := api.store.CreateNote("", "Root")
	require.NoError(t, err)
	l1, err := api.store.CreateSubPage(root.ID, "L1")
	require.NoError(t, err)
	l2, err := api.store.CreateSubPage(l1.ID, "L2")
	require.NoError(t, err)
	l3, err := api.store.CreateSubPage(l2.ID, "L3")
	require.NoError(t, err)

	resp := api.do(t, http.MethodPost, "/api/notes/"+l3.ID+"/subpages", map[string]string{"title": "too deep"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "MAX_DEPTH_EXCEEDED", body["code"])
}

func TestTrashFlow(t *testing.T) {
	api := newTestAPI(t)
	note, err := api.store.CreateNote("", "Doomed")
	require.NoError(t, err)

	resp := api.do(t, http.MethodDelete, "/api/notes/"+note.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/trash", nil)
	var trashed []models.Note
	decode(t, resp, &trashed)
	require.Len(t, trashed, 1)
	assert.Equal(t, note.ID, trashed[0].ID)

	resp = api.do(t, http.MethodPost, "/api/notes/"+note.ID+"/restore", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/trash", nil)
	decode(t, resp, &trashed)
	assert.Empty(t, trashed)
}

func TestBreadcrumbsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	root, err := api.store.CreateNote("", "Root")
	require.NoError(t, err)
	child, err := api.store.CreateSubPage(root.ID, "Child")
	require.NoError(t, err)

	resp := api.do(t, http.MethodGet, "/api/notes/"+child.ID+"/breadcrumbs", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var crumbs []map[string]string
	decode(t, resp, &crumbs)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Root", crumbs[0]["title"])
	assert.Equal(t, "Child", crumbs[1]["title"])
}

func TestBlocksRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	note, err := api.store.CreateNote("", "Doc")
	require.NoError(t, err)

	blocks := []map[string]interface{}{
		{"type": "heading", "level": 1, "content": "Doc"},
		{"type": "checkbox", "checked": true, "content": "done"},
	}
	resp := api.do(t, http.MethodPut, "/api/notes/"+note.ID+"/blocks", blocks)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := api.store.GetNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "# Doc\n- [x] done", got.Content)

	resp = api.do(t, http.MethodGet, "/api/notes/"+note.ID+"/blocks", nil)
	var parsed []map[string]interface{}
	decode(t, resp, &parsed)
	require.Len(t, parsed, 2)
	assert.Equal(t, "heading", parsed[0]["type"])
}

func TestFolderEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/folders", map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder models.Folder
	decode(t, resp, &folder)

	_, err := api.store.CreateNote(folder.ID, "x")
	require.NoError(t, err)

	resp = api.do(t, http.MethodGet, "/api/folders", nil)
	var folders []folderView
	decode(t, resp, &folders)
	require.Len(t, folders, 2, "sentinel plus the created folder")

	for _, f := range folders {
		switch f.ID {
		case models.AllNotesFolderID:
			assert.Equal(t, 1, f.NoteCount)
		case folder.ID:
			assert.Equal(t, 1, f.NoteCount)
		}
	}

	resp = api.do(t, http.MethodDelete, "/api/folders/"+folder.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateFolderEmptyName(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/folders", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSyncEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.store.CreateNote("", "x")
	require.NoError(t, err)

	resp := api.do(t, http.MethodGet, "/api/sync", nil)
	var state storage.SyncState
	decode(t, resp, &state)
	assert.Equal(t, storage.SyncPending, state.Status)

	resp = api.do(t, http.MethodPost, "/api/sync", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.Equal(t, storage.SyncSaved, state.Status)
}

func TestSuggestionEndpoints(t *testing.T) {
	api := newTestAPI(t)
	note, err := api.store.CreateNote("", "x")
	require.NoError(t, err)
	require.NoError(t, api.store.SetSuggestions(note.ID, []models.Suggestion{
		{ID: "sugg0001", Type: models.SuggestionTag, Value: "meeting", Confidence: 0.9},
	}))

	resp := api.do(t, http.MethodPost, "/api/notes/"+note.ID+"/suggestions/sugg0001/apply", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Note
	decode(t, resp, &updated)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "meeting", updated.Tags[0].Name)

	resp = api.do(t, http.MethodDelete, "/api/notes/"+note.ID+"/suggestions/missing1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchQuery(t *testing.T) {
	api := newTestAPI(t)
	match, err := api.store.CreateNote("", "Groceries")
	require.NoError(t, err)
	_, err = api.store.CreateNote("", "Meeting")
	require.NoError(t, err)

	resp := api.do(t, http.MethodGet, "/api/notes?q=grocer", nil)
	var notes []models.Note
	decode(t, resp, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, match.ID, notes[0].ID)
}
