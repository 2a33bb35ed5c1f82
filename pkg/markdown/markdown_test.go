package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Block
	}{
		{"heading1", "# Title", Block{Type: BlockHeading, Level: 1, Content: "Title"}},
		{"heading2", "## Sub", Block{Type: BlockHeading, Level: 2, Content: "Sub"}},
		{"heading3", "### Deep", Block{Type: BlockHeading, Level: 3, Content: "Deep"}},
		{"bullet dash", "- item", Block{Type: BlockBullet, Content: "item"}},
		{"bullet star", "* item", Block{Type: BlockBullet, Content: "item"}},
		{"checkbox open", "- [ ] task", Block{Type: BlockCheckbox, Content: "task"}},
		{"checkbox done", "- [x] task", Block{Type: BlockCheckbox, Checked: true, Content: "task"}},
		{"quote", "> wisdom", Block{Type: BlockQuote, Content: "wisdom"}},
		{"divider", "---", Block{Type: BlockDivider}},
		{"paragraph", "plain text", Block{Type: BlockParagraph, Content: "plain text"}},
		{"blank", "", Block{Type: BlockParagraph, Content: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.line)
			if tt.line == "" {
				assert.Nil(t, blocks)
				return
			}
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.want, blocks[0])
		})
	}
}

func TestParseCodeFence(t *testing.T) {
	blocks := Parse("```go\nfmt.Println(1)\nreturn\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, Block{
		Type:     BlockCode,
		Language: "go",
		Content:  "fmt.Println(1)\nreturn",
	}, blocks[0])
}

func TestParseUnterminatedCodeFence(t *testing.T) {
	blocks := Parse("```\ndangling")
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockCode, blocks[0].Type)
	assert.Equal(t, "dangling", blocks[0].Content)
}

func TestRoundTrip(t *testing.T) {
	doc := "# Shopping\n" +
		"\n" +
		"Things for the week:\n" +
		"- milk\n" +
		"- [ ] eggs\n" +
		"- [x] bread\n" +
		"\n" +
		"> keep receipts\n" +
		"---\n" +
		"```go\n" +
		"fmt.Println(\"hi\")\n" +
		"```\n" +
		"done"

	assert.Equal(t, doc, Render(Parse(doc)))
}

func TestRenderIsStable(t *testing.T) {
	doc := "## Notes\n* star bullets normalize\nplain"
	once := Render(Parse(doc))
	twice := Render(Parse(once))
	assert.Equal(t, once, twice, "render output is a fixed point")
	assert.Contains(t, once, "- star bullets normalize")
}

func TestRenderEmptyCodeBlock(t *testing.T) {
	got := Render([]Block{{Type: BlockCode, Language: "sh"}})
	assert.Equal(t, "```sh\n```", got)
}
