package models

// Snapshot is the persisted state of a note store. UI-only state such as
// panel visibility or scroll position is deliberately excluded.
type Snapshot struct {
	Notes          []*Note   `json:"notes"`
	Folders        []*Folder `json:"folders"`
	ActiveFolderID string    `json:"activeFolderId"`
	ActiveNoteID   string    `json:"activeNoteId,omitempty"`
}
