// Package views contains pure, stateless query functions over note
// collections. All functions operate on a snapshot slice and never
// mutate their input; all orderings are stable.
package views

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/rhythm00111/capella-notes/pkg/models"
)

// Crumb is one breadcrumb entry, root first.
type Crumb struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NotesByFolder returns the non-deleted notes of a folder. The
// "All Notes" sentinel returns every non-deleted note.
func NotesByFolder(notes []*models.Note, folderID string) []*models.Note {
	active := lo.Filter(notes, func(n *models.Note, _ int) bool {
		return !n.IsDeleted
	})
	if folderID == models.AllNotesFolderID {
		return active
	}
	return lo.Filter(active, func(n *models.Note, _ int) bool {
		return n.FolderID == folderID
	})
}

// FilterBySearch filters notes by a case-insensitive substring match
// against title or content. A blank query returns the input unchanged.
func FilterBySearch(notes []*models.Note, query string) []*models.Note {
	if strings.TrimSpace(query) == "" {
		return notes
	}
	q := strings.ToLower(query)
	return lo.Filter(notes, func(n *models.Note, _ int) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q)
	})
}

// SortByRecent sorts notes pinned-first, then by updatedAt descending.
// Pin status strictly dominates recency. The sort is stable so repeated
// renders of unchanged data keep their order.
func SortByRecent(notes []*models.Note) []*models.Note {
	sorted := make([]*models.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsPinned != sorted[j].IsPinned {
			return sorted[i].IsPinned
		}
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}

// FolderNoteCount counts the notes NotesByFolder would return.
func FolderNoteCount(notes []*models.Note, folderID string) int {
	return len(NotesByFolder(notes, folderID))
}

// Breadcrumbs walks parent pointers from the given note to its root and
// returns the chain root-first. The walk is capped at maxDepth+1 hops so
// an accidentally introduced cycle cannot loop forever. Returns nil when
// the note does not exist.
func Breadcrumbs(notes []*models.Note, noteID string, maxDepth int) []Crumb {
	current := findNote(notes, noteID)
	if current == nil {
		return nil
	}

	var crumbs []Crumb
	for hops := 0; current != nil && hops <= maxDepth; hops++ {
		crumbs = append(crumbs, Crumb{ID: current.ID, Title: current.Title})
		if current.ParentID == "" {
			break
		}
		current = findNote(notes, current.ParentID)
	}

	// Reverse so the root comes first
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

// ChildNotes returns a note's non-deleted children in childIds order,
// which is the authoritative display order.
func ChildNotes(notes []*models.Note, noteID string) []*models.Note {
	parent := findNote(notes, noteID)
	if parent == nil {
		return nil
	}

	var children []*models.Note
	for _, childID := range parent.ChildIDs {
		if child := findNote(notes, childID); child != nil && !child.IsDeleted {
			children = append(children, child)
		}
	}
	return children
}

// AllTags unions every non-deleted note's tags, deduplicated by tag ID
// in first-seen order.
func AllTags(notes []*models.Note) []models.NoteTag {
	var tags []models.NoteTag
	for _, n := range notes {
		if n.IsDeleted {
			continue
		}
		tags = append(tags, n.Tags...)
	}
	return lo.UniqBy(tags, func(t models.NoteTag) string {
		return t.ID
	})
}

// CanNestSubPage reports whether a new sub-page may be created under
// parentID without exceeding maxDepth levels of nesting.
func CanNestSubPage(notes []*models.Note, parentID string, maxDepth int) bool {
	return NoteDepth(notes, parentID) < maxDepth
}

func findNote(notes []*models.Note, id string) *models.Note {
	if id == "" {
		return nil
	}
	for _, n := range notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
