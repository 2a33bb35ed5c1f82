package models

import "time"

// SuggestionType categorizes suggestions produced by a provider.
type SuggestionType string

const (
	SuggestionTag       SuggestionType = "tag"
	SuggestionLink      SuggestionType = "link"
	SuggestionSummary   SuggestionType = "summary"
	SuggestionDuplicate SuggestionType = "duplicate"
	SuggestionTask      SuggestionType = "task"
)

// LinkTarget identifies another note referenced by a link or duplicate
// suggestion, with the provider's relevance score.
type LinkTarget struct {
	NoteID    string  `json:"noteId"`
	NoteTitle string  `json:"noteTitle"`
	Score     float64 `json:"score"`
}

// Suggestion is a single provider result stored on a note. Value carries
// the payload for tag, summary and task suggestions; Link is set for link
// and duplicate suggestions.
type Suggestion struct {
	ID         string         `json:"id"`
	Type       SuggestionType `json:"type"`
	Confidence float64        `json:"confidence"` // 0..1
	Value      string         `json:"value,omitempty"`
	Link       *LinkTarget    `json:"link,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Applied    bool           `json:"applied"`
}
