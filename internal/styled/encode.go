package styled

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// Encoder turns styled lines into terminal output for one colour profile.
// With termenv.Ascii it emits plain text.
type Encoder struct {
	Profile    termenv.Profile
	Hyperlinks bool
}

// Encode renders a single line.
func (e Encoder) Encode(l Line) string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(e.segment(seg))
	}
	return b.String()
}

// Lines renders each line independently.
func (e Encoder) Lines(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = e.Encode(line)
	}
	return out
}

func (e Encoder) segment(seg Segment) string {
	if e.Profile == termenv.Ascii || seg.Style.IsZero() {
		return seg.Text
	}

	text := seg.Text
	st := seg.Style
	if st.Fg != tcell.ColorDefault || st.Bg != tcell.ColorDefault || st.Attrs != 0 {
		out := e.Profile.String(text)
		if c := e.color(st.Fg); c != nil {
			out = out.Foreground(c)
		}
		if c := e.color(st.Bg); c != nil {
			out = out.Background(c)
		}
		if st.Attrs&AttrBold != 0 {
			out = out.Bold()
		}
		if st.Attrs&AttrDim != 0 {
			out = out.Faint()
		}
		if st.Attrs&AttrItalic != 0 {
			out = out.Italic()
		}
		if st.Attrs&AttrUnderline != 0 {
			out = out.Underline()
		}
		if st.Attrs&AttrBlink != 0 {
			out = out.Blink()
		}
		if st.Attrs&AttrReverse != 0 {
			out = out.Reverse()
		}
		if st.Attrs&AttrStrike != 0 {
			out = out.CrossOut()
		}
		text = out.String()
	}
	if st.Link != "" && e.Hyperlinks {
		text = ansi.SetHyperlink(st.Link) + text + ansi.ResetHyperlink()
	}
	return text
}

func (e Encoder) color(c tcell.Color) termenv.Color {
	if !c.Valid() {
		return nil
	}
	if c.IsRGB() {
		return e.Profile.Color(fmt.Sprintf("#%06x", c.Hex()))
	}
	if idx, ok := PaletteIndex(c); ok {
		return e.Profile.Color(strconv.Itoa(idx))
	}
	return nil
}

// PaletteIndex reports the xterm palette index of a non-RGB colour.
func PaletteIndex(c tcell.Color) (int, bool) {
	if !c.Valid() || c.IsRGB() || c&tcell.ColorSpecial != 0 {
		return 0, false
	}
	return int(c &^ tcell.ColorValid), true
}
