package storage

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/errors"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/performance"
	"github.com/rhythm00111/capella-notes/pkg/store"
)

// SyncStatus describes the persistence state shown to the UI.
type SyncStatus string

const (
	SyncSaved    SyncStatus = "saved"
	SyncPending  SyncStatus = "pending"
	SyncDegraded SyncStatus = "degraded"
)

// SyncState is the observable sync state.
type SyncState struct {
	Status    SyncStatus `json:"status"`
	LastSaved time.Time  `json:"lastSaved,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

const saveKey = "snapshot"

// Saver persists store snapshots to a BlobStore with a trailing-edge
// debounce, so one write covers a burst of keystrokes. A failed save
// never touches the in-memory state: the saver flips to degraded and the
// next mutation retries.
type Saver struct {
	store     *store.NoteStore
	blob      BlobStore
	debouncer *performance.Debouncer
	retry     *errors.RetryHandler
	log       zerolog.Logger

	// flushMu serializes snapshot writes: a debounce timer firing
	// concurrently with an explicit Flush must not interleave writes.
	flushMu sync.Mutex

	mu    sync.Mutex
	state SyncState
}

// NewSaver wires a saver to the store's change hook. Every mutation
// schedules a debounced snapshot write.
func NewSaver(st *store.NoteStore, blob BlobStore, delay time.Duration, log zerolog.Logger) *Saver {
	s := &Saver{
		store:     st,
		blob:      blob,
		debouncer: performance.NewDebouncer(delay),
		retry:     errors.NewRetryHandler(3),
		log:       log,
		state:     SyncState{Status: SyncSaved},
	}
	st.OnChange(s.Schedule)
	return s
}

// Schedule queues a snapshot write after the debounce delay. Repeated
// calls within the delay coalesce into one write.
func (s *Saver) Schedule() {
	s.mu.Lock()
	if s.state.Status != SyncDegraded {
		s.state.Status = SyncPending
	}
	s.mu.Unlock()
	s.debouncer.Debounce(saveKey, func() { _ = s.flush() })
}

// Flush cancels any pending debounce and writes immediately. Used on
// shutdown.
func (s *Saver) Flush() error {
	var err error
	s.debouncer.Flush(saveKey, func() { err = s.flush() })
	return err
}

func (s *Saver) flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	snap := s.store.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		s.fail(err)
		return errors.Wrap(err, errors.ErrTypePersistence, "SNAPSHOT_ENCODE_FAILED",
			"failed to encode snapshot")
	}

	if err := s.retry.Execute(func() error { return s.blob.Save(data) }); err != nil {
		s.fail(err)
		return errors.ErrSnapshotSaveFailed.WithContext("cause", err.Error())
	}

	s.mu.Lock()
	s.state = SyncState{Status: SyncSaved, LastSaved: time.Now()}
	s.mu.Unlock()
	return nil
}

func (s *Saver) fail(err error) {
	s.log.Error().Err(err).Msg("snapshot save failed, state kept in memory")
	s.mu.Lock()
	s.state.Status = SyncDegraded
	s.state.LastError = err.Error()
	s.mu.Unlock()
}

// State returns the current sync state.
func (s *Saver) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load reads the stored snapshot into the store. A missing snapshot is a
// first run and leaves the store untouched.
func (s *Saver) Load() error {
	data, err := s.blob.Load()
	if err != nil {
		return errors.ErrSnapshotLoadFailed.WithContext("cause", err.Error())
	}
	if data == nil {
		return nil
	}
	return s.Apply(data)
}

// Apply decodes snapshot bytes into the store. Also used when the blob
// changes externally (multi-instance, last writer wins).
func (s *Saver) Apply(data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return errors.ErrSnapshotLoadFailed.WithContext("cause", err.Error())
	}
	s.store.RestoreSnapshot(snap)
	return nil
}
