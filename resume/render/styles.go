package render

// RunStyle captures the inline run formatting for each resume element.
type RunStyle struct {
	Bold      bool
	Underline bool
	Size      int
}

// Sizes are in half-points.
const (
	NameSize    = 32
	HeadingSize = 24
	BodySize    = 22
)

// Spacing values are in twips.
const (
	SpacingNone    = 0
	SpacingItem    = 100
	SpacingSection = 240
	HeadingBefore  = 120
	HeadingAfter   = 100
	PageMargin     = 720
)

// DatePadding shifts the dates on an experience title line. It is a literal
// run of spaces rather than a right-aligned tab stop.
var DatePadding = "                    "

// StyleMap centralizes the formatting for key resume elements.
var StyleMap = map[string]RunStyle{
	"name": {
		Bold: true,
		Size: NameSize,
	},
	"contact": {
		Size: BodySize,
	},
	"email": {
		Underline: true,
		Size:      BodySize,
	},
	"sectionHeading": {
		Bold: true,
		Size: HeadingSize,
	},
	"roleLine": {
		Bold: true,
		Size: BodySize,
	},
	"label": {
		Bold: true,
		Size: BodySize,
	},
	"body": {
		Size: BodySize,
	},
}

func styled(key, text string) Run {
	style := StyleMap[key]
	return Run{
		Text:      text,
		Bold:      style.Bold,
		Underline: style.Underline,
		Size:      style.Size,
	}
}
