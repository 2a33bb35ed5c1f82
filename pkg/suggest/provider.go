// Package suggest produces tag, link, summary, duplicate and task
// suggestions from note text using local heuristics behind an artificial
// delay. It performs no model inference; the store treats any Provider
// as opaque.
package suggest

import (
	"context"

	"github.com/rhythm00111/capella-notes/pkg/models"
)

// Provider analyzes a note against the full collection and returns
// suggestions. Implementations must honor ctx cancellation; callers
// treat any error as "no suggestions this round".
type Provider interface {
	Analyze(ctx context.Context, note *models.Note, all []*models.Note) ([]models.Suggestion, error)
}
