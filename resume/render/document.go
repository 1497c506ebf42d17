package render

import "strings"

// Alignment is the paragraph justification of a block.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "both"
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
	Size      int
}

// Block is one paragraph of the rendered document.
type Block struct {
	Runs          []Run
	Align         Alignment
	SpacingBefore int
	SpacingAfter  int
	Bullet        bool
}

// Document is the ordered block sequence produced by Render.
type Document struct {
	Blocks []Block
}

// Text returns the concatenated run text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Text renders the document as plain text, one line per block.
func (d Document) Text() string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if b.Bullet {
			sb.WriteString("• ")
		}
		sb.WriteString(b.Text())
	}
	return sb.String()
}
