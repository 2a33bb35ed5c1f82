package services

import (
	"context"
	"time"
)

// analysisTimeout bounds one full suggestion pass, provider delays
// included.
const analysisTimeout = 30 * time.Second

// Analyze kicks off background suggestion analysis for a note. A run
// already in flight for the same note is cancelled first; only the
// newest run may publish results. The call returns once the run is
// scheduled.
func (s *NoteService) Analyze(noteID string) error {
	if err := validateID(noteID); err != nil {
		return err
	}
	note, err := s.store.GetNote(noteID)
	if err != nil {
		return err
	}
	all := s.store.Notes()

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	run := &analysisRun{ctx: ctx, cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.pending[noteID]; ok {
		prev.cancel()
	}
	s.pending[noteID] = run
	s.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			s.mu.Lock()
			if s.pending[noteID] == run {
				delete(s.pending, noteID)
			}
			s.mu.Unlock()
		}()

		suggestions, err := s.provider.Analyze(ctx, note, all)
		if err != nil {
			s.log.Debug().Err(err).Str("note", noteID).Msg("analysis did not complete")
			return
		}
		if ctx.Err() != nil {
			return
		}
		// The store rejects results for notes deleted or trashed since
		// the run started.
		if err := s.store.SetSuggestions(noteID, suggestions); err != nil {
			s.log.Debug().Err(err).Str("note", noteID).Msg("discarding stale analysis result")
			return
		}
		s.log.Info().Str("note", noteID).Int("suggestions", len(suggestions)).Msg("analysis complete")
	}()

	return nil
}

// CancelAnalysis aborts an in-flight analysis run for the note, if any.
func (s *NoteService) CancelAnalysis(noteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run, ok := s.pending[noteID]; ok {
		run.cancel()
		delete(s.pending, noteID)
	}
}

// Close cancels every in-flight analysis run.
func (s *NoteService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, run := range s.pending {
		run.cancel()
		delete(s.pending, id)
	}
}
