// Command seed populates the snapshot with a small sample workspace:
// two folders, a few markdown notes, a sub-page, tags and a link.
// Useful for trying out the API against realistic data.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/config"
	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/storage"
	"github.com/rhythm00111/capella-notes/pkg/store"
)

func welcomeContent() string {
	return `# Welcome to Capella Notes

Your notes live here. A few things to try:

- Create folders to group notes
- Pin important notes so they stay on top
- [ ] Check off tasks right inside a note

> Everything is saved automatically.

` +
		"```go\n" +
		"fmt.Println(\"Hello from Capella!\")\n" +
		"```\n"
}

func planningContent() string {
	return `## Weekly planning

Agenda for the project sync meeting.

- [ ] Review the release timeline
- [ ] Need to update the budget milestone
- [x] Collect action items from last standup

Remember to follow up on the deployment checklist.`
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	blob, err := storage.NewFileBlobStore(cfg.SnapshotPath(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open snapshot: %v\n", err)
		os.Exit(1)
	}
	defer blob.Close()

	st := store.NewWithMaxDepth(cfg.MaxSubPageDepth)
	saver := storage.NewSaver(st, blob, 0, log)
	if err := saver.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load snapshot: %v\n", err)
		os.Exit(1)
	}

	work, err := st.CreateFolder("Work")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create folder: %v\n", err)
		os.Exit(1)
	}

	welcome, err := st.CreateNote(models.AllNotesFolderID, "Welcome")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create note: %v\n", err)
		os.Exit(1)
	}
	content := welcomeContent()
	if err := st.UpdateNote(welcome.ID, store.NoteUpdate{Content: &content}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to update note: %v\n", err)
		os.Exit(1)
	}
	_ = st.AddTag(welcome.ID, models.NoteTag{Name: "personal", Color: models.TagColorGreen})

	planning, err := st.CreateNote(work.ID, "Weekly planning")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create note: %v\n", err)
		os.Exit(1)
	}
	content = planningContent()
	if err := st.UpdateNote(planning.ID, store.NoteUpdate{Content: &content}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to update note: %v\n", err)
		os.Exit(1)
	}
	_ = st.AddTag(planning.ID, models.NoteTag{Name: "meeting", Color: models.TagColorBlue})
	_ = st.TogglePinned(planning.ID)

	subPage, err := st.CreateSubPage(planning.ID, "Action items")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create sub-page: %v\n", err)
		os.Exit(1)
	}
	_ = st.AddLink(welcome.ID, planning.ID)

	if err := saver.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded snapshot at %s\n", cfg.SnapshotPath())
	fmt.Printf("  welcome:  %s\n", welcome.ID)
	fmt.Printf("  planning: %s (sub-page %s)\n", planning.ID, subPage.ID)
}
