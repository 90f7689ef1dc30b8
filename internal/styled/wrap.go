package styled

import (
	"strings"

	"github.com/tnwei/nbread/internal/textutil"
)

type styledRune struct {
	r     rune
	width int
	style Style
}

func (l Line) runes() []styledRune {
	out := make([]styledRune, 0, len(l)*8)
	for _, seg := range l {
		for _, r := range seg.Text {
			out = append(out, styledRune{r: r, width: textutil.RuneWidth(r), style: seg.Style})
		}
	}
	return out
}

func lineFromRunes(rs []styledRune) Line {
	var line Line
	var b strings.Builder
	var current Style
	flush := func() {
		if b.Len() > 0 {
			line = append(line, Segment{Text: b.String(), Style: current})
			b.Reset()
		}
	}
	for i, sr := range rs {
		if i == 0 || sr.style != current {
			flush()
			current = sr.style
		}
		b.WriteRune(sr.r)
	}
	flush()
	return line
}

// Width reports the number of terminal cells the line occupies.
func (l Line) Width() int {
	w := 0
	for _, seg := range l {
		w += textutil.DisplayWidth(seg.Text)
	}
	return w
}

// Truncate crops the line to at most width cells. Wide runes that would
// straddle the edge are dropped.
func (l Line) Truncate(width int) Line {
	if width <= 0 {
		return nil
	}
	if l.Width() <= width {
		return l
	}
	rs := l.runes()
	used := 0
	end := 0
	for end < len(rs) && used+rs[end].width <= width {
		used += rs[end].width
		end++
	}
	return lineFromRunes(rs[:end])
}

// Pad extends the line with spaces in style until it is width cells wide.
func (l Line) Pad(width int, style Style) Line {
	missing := width - l.Width()
	if missing <= 0 {
		return l
	}
	out := make(Line, len(l), len(l)+1)
	copy(out, l)
	return out.Append(strings.Repeat(" ", missing), style)
}

// WrapWords splits the line into rows of at most width cells, preferring to
// break at spaces. Words longer than width are split. Spaces at a break are
// dropped.
func (l Line) WrapWords(width int) []Line {
	if width <= 0 || l.Width() <= width {
		return []Line{l}
	}

	rs := l.runes()
	var rows []Line
	var row []styledRune
	used := 0

	flush := func() {
		end := len(row)
		for end > 0 && row[end-1].r == ' ' {
			end--
		}
		rows = append(rows, lineFromRunes(row[:end]))
		row = nil
		used = 0
	}

	for i := 0; i < len(rs); {
		j := i
		space := rs[i].r == ' '
		tokenWidth := 0
		for j < len(rs) && (rs[j].r == ' ') == space {
			tokenWidth += rs[j].width
			j++
		}
		token := rs[i:j]
		i = j

		switch {
		case used+tokenWidth <= width:
			row = append(row, token...)
			used += tokenWidth
		case space:
			flush()
		case tokenWidth <= width:
			flush()
			row = append(row, token...)
			used = tokenWidth
		default:
			for _, sr := range token {
				if used+sr.width > width && len(row) > 0 {
					flush()
				}
				row = append(row, sr)
				used += sr.width
			}
		}
	}
	if len(row) > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}
