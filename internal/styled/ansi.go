package styled

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/tnwei/nbread/internal/textutil"
)

const ansiTabWidth = 8

// FromANSI interprets the escape sequences embedded in text and returns the
// styled lines they describe. SGR sequences become styles, OSC 8 sequences
// become links, every other escape or control sequence is dropped. Styles
// carry over line breaks the way a terminal keeps them. Within a line a
// carriage return discards what was written before it. A single trailing
// newline does not produce an extra empty line.
func FromANSI(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")
	if len(raw) > 1 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	var d ansiDecoder
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = d.decodeLine(s)
	}
	return lines
}

type ansiDecoder struct {
	style Style
}

func (d *ansiDecoder) decodeLine(s string) Line {
	var line Line
	var text strings.Builder
	column := 0

	flush := func() {
		line = line.Append(text.String(), d.style)
		text.Reset()
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == 0x1b:
			flush()
			i = d.escape(s, i)
		case c == '\r':
			text.Reset()
			line = nil
			column = 0
			i++
		case c == '\t':
			spaces := ansiTabWidth - column%ansiTabWidth
			text.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			i++
		case c < 0x20 || c == 0x7f:
			i++
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			i += size
			if r >= 0x80 && r < 0xa0 {
				continue
			}
			text.WriteRune(r)
			column += textutil.RuneWidth(r)
		}
	}
	flush()
	return line
}

// escape consumes the sequence starting with ESC at s[i] and returns the
// index just past it.
func (d *ansiDecoder) escape(s string, i int) int {
	if i+1 >= len(s) {
		return len(s)
	}
	switch s[i+1] {
	case '[':
		return d.csi(s, i+2)
	case ']':
		payload, next := stringTerminated(s, i+2)
		d.osc(payload)
		return next
	case 'P', 'X', '^', '_':
		_, next := stringTerminated(s, i+2)
		return next
	case '(', ')', '*', '+', '#', '%':
		return min(i+3, len(s))
	default:
		return i + 2
	}
}

func (d *ansiDecoder) csi(s string, start int) int {
	j := start
	for j < len(s) && s[j] >= 0x30 && s[j] <= 0x3f {
		j++
	}
	params := s[start:j]
	intermediates := j
	for j < len(s) && s[j] >= 0x20 && s[j] <= 0x2f {
		j++
	}
	if j >= len(s) {
		return len(s)
	}
	final := s[j]
	if final == 'm' && intermediates == j && !strings.ContainsAny(params, "<=>?") {
		d.sgr(params)
	}
	return j + 1
}

// stringTerminated finds the end of an OSC/DCS style string starting at
// start. Both BEL and ST (ESC \) terminate it.
func stringTerminated(s string, start int) (string, int) {
	for j := start; j < len(s); j++ {
		switch s[j] {
		case 0x07:
			return s[start:j], j + 1
		case 0x1b:
			if j+1 < len(s) && s[j+1] == '\\' {
				return s[start:j], j + 2
			}
		}
	}
	return s[start:], len(s)
}

func (d *ansiDecoder) osc(payload string) {
	if !strings.HasPrefix(payload, "8;") {
		return
	}
	parts := strings.SplitN(payload, ";", 3)
	if len(parts) < 3 {
		d.style.Link = ""
		return
	}
	d.style.Link = parts[2]
}

func (d *ansiDecoder) sgr(params string) {
	if params == "" {
		d.reset()
		return
	}
	parts := strings.Split(params, ";")
	for k := 0; k < len(parts); k++ {
		part := parts[k]
		if strings.Contains(part, ":") {
			d.subparams(strings.Split(part, ":"))
			continue
		}
		n := atoi(part)
		switch {
		case n == 0:
			d.reset()
		case n == 1:
			d.style.Attrs |= AttrBold
		case n == 2:
			d.style.Attrs |= AttrDim
		case n == 3:
			d.style.Attrs |= AttrItalic
		case n == 4, n == 21:
			d.style.Attrs |= AttrUnderline
		case n == 5, n == 6:
			d.style.Attrs |= AttrBlink
		case n == 7:
			d.style.Attrs |= AttrReverse
		case n == 8:
			d.style.Attrs |= AttrConceal
		case n == 9:
			d.style.Attrs |= AttrStrike
		case n == 22:
			d.style.Attrs &^= AttrBold | AttrDim
		case n == 23:
			d.style.Attrs &^= AttrItalic
		case n == 24:
			d.style.Attrs &^= AttrUnderline
		case n == 25:
			d.style.Attrs &^= AttrBlink
		case n == 27:
			d.style.Attrs &^= AttrReverse
		case n == 28:
			d.style.Attrs &^= AttrConceal
		case n == 29:
			d.style.Attrs &^= AttrStrike
		case n >= 30 && n <= 37:
			d.style.Fg = tcell.PaletteColor(n - 30)
		case n == 39:
			d.style.Fg = tcell.ColorDefault
		case n >= 40 && n <= 47:
			d.style.Bg = tcell.PaletteColor(n - 40)
		case n == 49:
			d.style.Bg = tcell.ColorDefault
		case n >= 90 && n <= 97:
			d.style.Fg = tcell.PaletteColor(n - 90 + 8)
		case n >= 100 && n <= 107:
			d.style.Bg = tcell.PaletteColor(n - 100 + 8)
		case n == 38, n == 48:
			color, used := extendedColor(parts[k+1:])
			k += used
			if n == 38 {
				d.style.Fg = color
			} else {
				d.style.Bg = color
			}
		}
	}
}

// subparams handles the colon form, e.g. 38:2::255:0:0 or 4:3.
func (d *ansiDecoder) subparams(sub []string) {
	switch atoi(sub[0]) {
	case 4:
		if len(sub) > 1 && atoi(sub[1]) == 0 {
			d.style.Attrs &^= AttrUnderline
		} else {
			d.style.Attrs |= AttrUnderline
		}
	case 38, 48:
		rest := sub[1:]
		if len(rest) >= 5 && atoi(rest[0]) == 2 {
			// Skip the colour-space id.
			rest = append([]string{rest[0]}, rest[2:]...)
		}
		color, _ := extendedColor(rest)
		if atoi(sub[0]) == 38 {
			d.style.Fg = color
		} else {
			d.style.Bg = color
		}
	}
}

// extendedColor decodes the arguments following 38/48 and reports how many
// of them it consumed.
func extendedColor(args []string) (tcell.Color, int) {
	if len(args) == 0 {
		return tcell.ColorDefault, 0
	}
	switch atoi(args[0]) {
	case 5:
		if len(args) < 2 {
			return tcell.ColorDefault, len(args)
		}
		return tcell.PaletteColor(clampByte(atoi(args[1]))), 2
	case 2:
		if len(args) < 4 {
			return tcell.ColorDefault, len(args)
		}
		r, g, b := clampByte(atoi(args[1])), clampByte(atoi(args[2])), clampByte(atoi(args[3]))
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), 4
	default:
		return tcell.ColorDefault, 1
	}
}

func (d *ansiDecoder) reset() {
	d.style = Style{Link: d.style.Link}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func clampByte(n int) int {
	return max(0, min(n, 255))
}
