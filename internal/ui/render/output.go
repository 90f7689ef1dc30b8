package render

import (
	"strings"
	"unicode"

	"github.com/tnwei/nbread/internal/notebook"
	"github.com/tnwei/nbread/internal/styled"
)

// OutputRenderer turns code cell outputs into blocks.
type OutputRenderer struct {
	palette Palette
}

// NewOutputRenderer returns a renderer using palette for Out[..] labels.
func NewOutputRenderer(palette Palette) *OutputRenderer {
	return &OutputRenderer{palette: palette}
}

// Render returns the block for out and whether the next cell must be
// preceded by a blank line. ok is false for output types that are not
// shown; callers must then leave their state untouched.
func (r *OutputRenderer) Render(out notebook.Output) (block Block, newLine bool, ok bool) {
	switch out.Kind {
	case notebook.OutputStream:
		return Text(styled.FromANSI(out.Text)...), false, true
	case notebook.OutputError:
		trace := strings.TrimRightFunc(strings.Join(out.Traceback, "\n"), unicode.IsSpace)
		return Text(styled.FromANSI(trace)...), true, true
	case notebook.OutputExecuteResult:
		label := styled.Line(nil).
			Append("Out[", r.palette.OutLabel).
			Append(out.ExecutionCount.Label(), r.palette.OutCount).
			Append("]:", r.palette.OutLabel)
		lines := append([]styled.Line{label}, styled.FromANSI(out.PlainText)...)
		return Text(lines...), true, true
	default:
		return nil, false, false
	}
}
