// Package markdown maps note content line-by-line onto block constructs
// the way the block editor reads it: headings, bullets, checkboxes,
// quotes, fenced code and dividers. Render(Parse(x)) is the canonical
// form and is stable under further round-trips.
package markdown

import "strings"

// BlockType identifies a block construct.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockBullet    BlockType = "bullet"
	BlockCheckbox  BlockType = "checkbox"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockDivider   BlockType = "divider"
)

// Block is one parsed line construct. Code blocks span multiple source
// lines; everything else is a single line.
type Block struct {
	Type     BlockType `json:"type"`
	Content  string    `json:"content"`
	Level    int       `json:"level,omitempty"`    // headings: 1..3
	Checked  bool      `json:"checked,omitempty"`  // checkboxes
	Language string    `json:"language,omitempty"` // code blocks
}

// Parse splits content into blocks. Unrecognized lines, including blank
// ones, become paragraphs so no input is ever dropped.
func Parse(content string) []Block {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Type: BlockHeading, Level: 3, Content: line[4:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Type: BlockHeading, Level: 2, Content: line[3:]})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Type: BlockHeading, Level: 1, Content: line[2:]})
		case strings.HasPrefix(line, "- [ ] "):
			blocks = append(blocks, Block{Type: BlockCheckbox, Content: line[6:]})
		case strings.HasPrefix(line, "- [x] "):
			blocks = append(blocks, Block{Type: BlockCheckbox, Checked: true, Content: line[6:]})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, Block{Type: BlockBullet, Content: line[2:]})
		case strings.HasPrefix(line, "* "):
			blocks = append(blocks, Block{Type: BlockBullet, Content: line[2:]})
		case strings.HasPrefix(line, "> "):
			blocks = append(blocks, Block{Type: BlockQuote, Content: line[2:]})
		case line == "---":
			blocks = append(blocks, Block{Type: BlockDivider})
		case strings.HasPrefix(line, "```"):
			language := strings.TrimPrefix(line, "```")
			var body []string
			i++
			for ; i < len(lines); i++ {
				if lines[i] == "```" {
					break
				}
				body = append(body, lines[i])
			}
			blocks = append(blocks, Block{
				Type:     BlockCode,
				Language: language,
				Content:  strings.Join(body, "\n"),
			})
		default:
			blocks = append(blocks, Block{Type: BlockParagraph, Content: line})
		}
	}
	return blocks
}

// Render writes blocks back to markdown text, inverting Parse.
func Render(blocks []Block) string {
	var lines []string
	for _, b := range blocks {
		switch b.Type {
		case BlockHeading:
			level := b.Level
			if level < 1 || level > 3 {
				level = 1
			}
			lines = append(lines, strings.Repeat("#", level)+" "+b.Content)
		case BlockBullet:
			lines = append(lines, "- "+b.Content)
		case BlockCheckbox:
			box := "- [ ] "
			if b.Checked {
				box = "- [x] "
			}
			lines = append(lines, box+b.Content)
		case BlockQuote:
			lines = append(lines, "> "+b.Content)
		case BlockDivider:
			lines = append(lines, "---")
		case BlockCode:
			lines = append(lines, "```"+b.Language)
			if b.Content != "" {
				lines = append(lines, strings.Split(b.Content, "\n")...)
			}
			lines = append(lines, "```")
		default:
			lines = append(lines, b.Content)
		}
	}
	return strings.Join(lines, "\n")
}
