package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/config"
	"github.com/rhythm00111/capella-notes/pkg/handlers"
	"github.com/rhythm00111/capella-notes/pkg/services"
	"github.com/rhythm00111/capella-notes/pkg/storage"
	"github.com/rhythm00111/capella-notes/pkg/store"
	"github.com/rhythm00111/capella-notes/pkg/suggest"
)

// App wires the store, persistence, suggestion service and HTTP API
// together.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.NoteStore
	blob    *storage.FileBlobStore
	saver   *storage.Saver
	service *services.NoteService
	server  *http.Server
}

// NewApp builds the application from configuration. The snapshot is
// loaded eagerly; a missing or unreadable snapshot starts an empty
// workspace rather than failing startup.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	st := store.NewWithMaxDepth(cfg.MaxSubPageDepth)

	blob, err := storage.NewFileBlobStore(cfg.SnapshotPath(), log)
	if err != nil {
		return nil, err
	}

	saver := storage.NewSaver(st, blob, cfg.AutoSaveDelay(), log)
	if err := saver.Load(); err != nil {
		log.Warn().Err(err).Msg("snapshot not loaded, starting with an empty workspace")
	}

	// External edits to the snapshot file (sync clients, manual edits)
	// replace the in-memory state.
	blob.Watch(func(data []byte) {
		if err := saver.Apply(data); err != nil {
			log.Warn().Err(err).Msg("ignoring invalid external snapshot change")
			return
		}
		log.Info().Msg("reloaded snapshot after external change")
	})

	service := services.NewNoteService(st, suggest.NewHeuristicProvider(), log)
	api := handlers.NewAPIHandlers(st, service, saver, log)

	return &App{
		cfg:     cfg,
		log:     log,
		store:   st,
		blob:    blob,
		saver:   saver,
		service: service,
		server: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: api.Router(),
		},
	}, nil
}

// Run serves the API until the process is interrupted, then shuts down
// gracefully and flushes pending changes to disk.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.ListenAddr).Msg("listening")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Close()
		return err
	case s := <-sig:
		a.log.Info().Str("signal", s.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("server shutdown")
	}

	a.Close()
	return nil
}

// Close cancels background work and writes any pending snapshot.
func (a *App) Close() {
	a.service.Close()
	if err := a.saver.Flush(); err != nil {
		a.log.Error().Err(err).Msg("final flush failed")
	}
	if err := a.blob.Close(); err != nil {
		a.log.Error().Err(err).Msg("closing blob store")
	}
}
