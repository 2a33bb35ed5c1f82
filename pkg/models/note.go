package models

import "time"

// TagColor is one of the fixed tag palette colors.
type TagColor string

const (
	TagColorGray   TagColor = "gray"
	TagColorRed    TagColor = "red"
	TagColorOrange TagColor = "orange"
	TagColorAmber  TagColor = "amber"
	TagColorGreen  TagColor = "green"
	TagColorTeal   TagColor = "teal"
	TagColorBlue   TagColor = "blue"
	TagColorIndigo TagColor = "indigo"
	TagColorPurple TagColor = "purple"
	TagColorPink   TagColor = "pink"
)

// TagColors lists the full palette in picker order.
var TagColors = []TagColor{
	TagColorGray, TagColorRed, TagColorOrange, TagColorAmber, TagColorGreen,
	TagColorTeal, TagColorBlue, TagColorIndigo, TagColorPurple, TagColorPink,
}

// DefaultTagColor is used when a tag is created without an explicit color,
// e.g. when a tag suggestion is applied.
const DefaultTagColor = TagColorBlue

// Valid reports whether c is one of the palette colors.
func (c TagColor) Valid() bool {
	for _, v := range TagColors {
		if c == v {
			return true
		}
	}
	return false
}

// NoteTag is a tag embedded on a note. There is no global tag registry;
// the global tag list is derived from all notes' tags.
type NoteTag struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Color TagColor `json:"color"`
}

// Note is a single note or sub-page.
type Note struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"` // may be empty; UI substitutes "Untitled" for display
	Content  string    `json:"content"`
	FolderID string    `json:"folderId"`
	Tags     []NoteTag `json:"tags"`

	// Sub-page hierarchy. ParentID is empty for top-level notes.
	// IsSubPage is stored redundantly and must stay consistent with ParentID.
	ParentID  string   `json:"parentId,omitempty"`
	ChildIDs  []string `json:"childIds,omitempty"` // insertion order is display order
	IsSubPage bool     `json:"isSubPage"`

	// Note-to-note links. LinkedNotes and Backlinks are maintained as a
	// symmetric pair by the store's link operations.
	LinkedNotes []string `json:"linkedNotes,omitempty"`
	Backlinks   []string `json:"backlinks,omitempty"`

	Suggestions    []Suggestion `json:"suggestions,omitempty"`
	AISummary      string       `json:"aiSummary,omitempty"`
	LastAnalyzedAt time.Time    `json:"lastAnalyzedAt,omitempty"`

	IsPinned  bool `json:"isPinned"`
	IsDeleted bool `json:"isDeleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTag reports whether the note already carries a tag with the given ID.
func (n *Note) HasTag(tagID string) bool {
	for _, t := range n.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append([]NoteTag(nil), n.Tags...)
	c.ChildIDs = append([]string(nil), n.ChildIDs...)
	c.LinkedNotes = append([]string(nil), n.LinkedNotes...)
	c.Backlinks = append([]string(nil), n.Backlinks...)
	c.Suggestions = append([]Suggestion(nil), n.Suggestions...)
	return &c
}
