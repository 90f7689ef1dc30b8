package render

import (
	"github.com/muesli/termenv"

	"github.com/tnwei/nbread/internal/styled"
)

const minWidth = 8

// Console is the output surface a block is rendered for: a width in cells
// and the encoder for its colour profile.
type Console struct {
	Width   int
	Encoder styled.Encoder
}

// NewConsole clamps width to a usable minimum.
func NewConsole(width int, profile termenv.Profile, hyperlinks bool) Console {
	return Console{
		Width:   max(width, minWidth),
		Encoder: styled.Encoder{Profile: profile, Hyperlinks: hyperlinks},
	}
}

// Inset returns a console narrowed by n columns on each side.
func (c Console) Inset(n int) Console {
	c.Width = max(c.Width-2*n, minWidth)
	return c
}

// Block is one unit of output. Render returns encoded terminal lines
// without trailing newlines.
type Block interface {
	Render(c Console) []string
}

// TextBlock is styled text that is word-wrapped to the console width.
type TextBlock struct {
	Lines []styled.Line
}

// Text builds a TextBlock.
func Text(lines ...styled.Line) TextBlock {
	return TextBlock{Lines: lines}
}

func (b TextBlock) Render(c Console) []string {
	var out []string
	for _, line := range b.Lines {
		out = append(out, c.Encoder.Lines(line.WrapWords(c.Width))...)
	}
	return out
}

// BlankBlock is a single empty line.
type BlankBlock struct{}

func (BlankBlock) Render(Console) []string {
	return []string{""}
}

// LinesBlock holds lines already laid out for a width.
type LinesBlock struct {
	Build func(width int) []styled.Line
}

func (b LinesBlock) Render(c Console) []string {
	return c.Encoder.Lines(b.Build(c.Width))
}
