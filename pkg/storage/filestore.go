package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileBlobStore persists the snapshot as a single JSON file and watches
// it for external writes, so a second instance editing the same file
// wins at the snapshot level (last writer wins, no merging).
type FileBlobStore struct {
	path    string
	log     zerolog.Logger
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	lastWrite time.Time
}

// NewFileBlobStore creates the snapshot directory if needed and sets up
// a watcher on it. A watcher failure is logged, not fatal: external
// change detection is then simply unavailable.
func NewFileBlobStore(path string, log zerolog.Logger) (*FileBlobStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &FileBlobStore{path: path, log: log}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("could not create snapshot watcher")
	} else if err := watcher.Add(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("could not watch snapshot directory")
		watcher.Close()
	} else {
		s.watcher = watcher
	}

	return s, nil
}

// Path returns the snapshot file path.
func (s *FileBlobStore) Path() string {
	return s.path
}

// Save writes the blob and records the file's modification time so the
// watcher can tell our own writes from external ones.
func (s *FileBlobStore) Save(data []byte) error {
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	if info, err := os.Stat(s.path); err == nil {
		s.mu.Lock()
		s.lastWrite = info.ModTime()
		s.mu.Unlock()
	}
	return nil
}

// Load reads the blob, returning (nil, nil) when no snapshot exists yet.
func (s *FileBlobStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Watch delivers the file contents to onChange whenever the snapshot is
// modified by someone other than this process. Events whose modification
// time is not newer than our own last write are skipped.
func (s *FileBlobStore) Watch(onChange func(data []byte)) {
	if s.watcher == nil {
		return
	}

	go func() {
		for {
			select {
			case event, ok := <-s.watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.handleExternalWrite(onChange)

			case err, ok := <-s.watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("snapshot watcher error")
			}
		}
	}()
}

func (s *FileBlobStore) handleExternalWrite(onChange func(data []byte)) {
	info, err := os.Stat(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not stat changed snapshot")
		return
	}

	s.mu.Lock()
	own := !info.ModTime().After(s.lastWrite)
	if !own {
		s.lastWrite = info.ModTime()
	}
	s.mu.Unlock()
	if own {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read changed snapshot")
		return
	}
	s.log.Info().Str("path", s.path).Msg("snapshot changed externally, reloading")
	onChange(data)
}

// Close stops the watcher.
func (s *FileBlobStore) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
