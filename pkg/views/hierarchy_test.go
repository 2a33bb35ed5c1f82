package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhythm00111/capella-notes/pkg/models"
)

func chain() []*models.Note {
	root := note("root0001", "Root")
	root.ChildIDs = []string{"lvl10001"}
	l1 := note("lvl10001", "L1")
	l1.ParentID = "root0001"
	l1.ChildIDs = []string{"lvl20001", "lvl20002"}
	l2a := note("lvl20001", "L2a")
	l2a.ParentID = "lvl10001"
	l2b := note("lvl20002", "L2b")
	l2b.ParentID = "lvl10001"
	return []*models.Note{root, l1, l2a, l2b}
}

func TestNoteDepth(t *testing.T) {
	notes := chain()
	assert.Equal(t, 0, NoteDepth(notes, "root0001"))
	assert.Equal(t, 1, NoteDepth(notes, "lvl10001"))
	assert.Equal(t, 2, NoteDepth(notes, "lvl20001"))
	assert.Equal(t, 0, NoteDepth(notes, "missing1"))
}

func TestDescendants(t *testing.T) {
	notes := chain()
	assert.Equal(t, []string{"lvl10001", "lvl20001", "lvl20002"}, Descendants(notes, "root0001"))
	assert.Nil(t, Descendants(notes, "lvl20001"))
}

func TestRootNote(t *testing.T) {
	notes := chain()
	assert.Equal(t, "root0001", RootNote(notes, "lvl20002").ID)
	assert.Equal(t, "root0001", RootNote(notes, "root0001").ID)
	assert.Nil(t, RootNote(notes, "missing1"))
}

func TestPreviewStripsMarkdown(t *testing.T) {
	content := "# Shopping\n\n- **milk**\n- *eggs*\n\n> a quote"
	got := Preview(content, 100)
	assert.Equal(t, "Shopping milk", got, "first two non-empty lines, syntax stripped")
}

func TestPreviewTruncates(t *testing.T) {
	got := Preview("a very long first line of plain text here", 10)
	assert.Equal(t, "a very lon...", got)
}

func TestPreviewSkipsCodeFences(t *testing.T) {
	content := "```go\nfmt.Println(1)\n```\nplain text"
	assert.Equal(t, "plain text", Preview(content, 100))
}
