package models

import "time"

// AllNotesFolderID is the reserved ID of the virtual "All Notes" folder.
// It always exists, cannot be deleted or renamed, and is the fallback
// target when a folder is deleted.
const AllNotesFolderID = "all-notes"

const (
	DefaultFolderColor = "#10B981"
	DefaultFolderIcon  = "folder"
)

// FolderColors is the folder color picker palette.
var FolderColors = []string{
	"#10B981", // green
	"#3B82F6", // blue
	"#8B5CF6", // purple
	"#F59E0B", // amber
	"#EF4444", // red
	"#EC4899", // pink
}

// Folder groups notes. Order is the sort key among siblings.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	Order     int       `json:"order"`
}

// AllNotesFolder returns a fresh copy of the virtual "All Notes" folder.
func AllNotesFolder() *Folder {
	return &Folder{
		ID:        AllNotesFolderID,
		Name:      "All Notes",
		Color:     DefaultFolderColor,
		Icon:      DefaultFolderIcon,
		CreatedAt: time.Now(),
		Order:     0,
	}
}
