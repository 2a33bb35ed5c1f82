package views

import (
	"regexp"
	"strings"

	"github.com/rhythm00111/capella-notes/pkg/models"
)

// NoteDepth returns the number of ancestor hops from the note to its
// root. Top-level notes have depth 0. The walk is capped at the
// collection size so a corrupted parent cycle terminates.
func NoteDepth(notes []*models.Note, noteID string) int {
	depth := 0
	current := findNote(notes, noteID)
	for current != nil && current.ParentID != "" && depth < len(notes) {
		depth++
		current = findNote(notes, current.ParentID)
	}
	return depth
}

// Descendants returns the IDs of every transitive child of the note, in
// childIds walk order.
func Descendants(notes []*models.Note, noteID string) []string {
	note := findNote(notes, noteID)
	if note == nil || len(note.ChildIDs) == 0 {
		return nil
	}

	var ids []string
	for _, childID := range note.ChildIDs {
		ids = append(ids, childID)
		ids = append(ids, Descendants(notes, childID)...)
	}
	return ids
}

// RootNote walks parent pointers up to the top-level ancestor. Returns
// the note itself for top-level notes, nil if the note does not exist.
func RootNote(notes []*models.Note, noteID string) *models.Note {
	current := findNote(notes, noteID)
	for hops := 0; current != nil && current.ParentID != "" && hops < len(notes); hops++ {
		parent := findNote(notes, current.ParentID)
		if parent == nil {
			break
		}
		current = parent
	}
	return current
}

var (
	headingRe  = regexp.MustCompile(`(?m)^#+\s`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.+?)\*`)
	linkRe     = regexp.MustCompile(`\[\[(.+?)\]\]`)
	fenceRe    = regexp.MustCompile("(?s)```.+?```")
	inlineRe   = regexp.MustCompile("`(.+?)`")
	quoteRe    = regexp.MustCompile(`(?m)^>\s`)
	checkboxRe = regexp.MustCompile(`(?m)^-\s\[.\]\s`)
	bulletRe   = regexp.MustCompile(`(?m)^[-*]\s`)
	numberedRe = regexp.MustCompile(`(?m)^\d+\.\s`)
)

// Preview strips markdown syntax from content and returns the first two
// non-empty lines, truncated to maxLength.
func Preview(content string, maxLength int) string {
	cleaned := content
	cleaned = headingRe.ReplaceAllString(cleaned, "")
	cleaned = fenceRe.ReplaceAllString(cleaned, "")
	cleaned = boldRe.ReplaceAllString(cleaned, "$1")
	cleaned = italicRe.ReplaceAllString(cleaned, "$1")
	cleaned = linkRe.ReplaceAllString(cleaned, "$1")
	cleaned = inlineRe.ReplaceAllString(cleaned, "$1")
	cleaned = quoteRe.ReplaceAllString(cleaned, "")
	cleaned = checkboxRe.ReplaceAllString(cleaned, "")
	cleaned = bulletRe.ReplaceAllString(cleaned, "")
	cleaned = numberedRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "---", "")
	cleaned = strings.TrimSpace(cleaned)

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
		if len(lines) == 2 {
			break
		}
	}

	preview := strings.Join(lines, " ")
	if len(preview) > maxLength {
		preview = preview[:maxLength] + "..."
	}
	return preview
}
