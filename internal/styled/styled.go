// Package styled holds the terminal text model shared by every renderer:
// lines made of segments, each segment carrying a Style. Renderers build
// lines, the Encoder turns them into escape sequences for a colour profile.
package styled

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Attr is a bit set of text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrike
	AttrConceal
)

// Style describes how a segment is drawn. The zero value is the terminal
// default. tcell.ColorDefault means "unset" for both colours.
type Style struct {
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs Attr
	Link  string
}

// IsZero reports whether the style leaves the terminal defaults untouched.
func (s Style) IsZero() bool {
	return s.Fg == tcell.ColorDefault && s.Bg == tcell.ColorDefault && s.Attrs == 0 && s.Link == ""
}

// Merge layers o on top of s: colours and link set in o win, attributes are
// combined.
func (s Style) Merge(o Style) Style {
	if o.Fg != tcell.ColorDefault {
		s.Fg = o.Fg
	}
	if o.Bg != tcell.ColorDefault {
		s.Bg = o.Bg
	}
	if o.Link != "" {
		s.Link = o.Link
	}
	s.Attrs |= o.Attrs
	return s
}

// Foreground returns a copy of s with the foreground colour set.
func (s Style) Foreground(c tcell.Color) Style {
	s.Fg = c
	return s
}

// With returns a copy of s with the attributes added.
func (s Style) With(attrs Attr) Style {
	s.Attrs |= attrs
	return s
}

// Segment is a chunk of text with an associated style. Text never contains
// a newline.
type Segment struct {
	Text  string
	Style Style
}

// Line is one terminal row worth of segments (before wrapping).
type Line []Segment

// Plain returns the text of the line without any styling.
func (l Line) Plain() string {
	if len(l) == 0 {
		return ""
	}
	total := 0
	for _, seg := range l {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range l {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

// Append adds text with style to the line, merging with the last segment
// when the styles are identical.
func (l Line) Append(text string, style Style) Line {
	if text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].Style == style {
		l[n-1].Text += text
		return l
	}
	return append(l, Segment{Text: text, Style: style})
}

// Restyle returns a copy of the line with style layered over every segment.
func (l Line) Restyle(style Style) Line {
	out := make(Line, len(l))
	for i, seg := range l {
		out[i] = Segment{Text: seg.Text, Style: seg.Style.Merge(style)}
	}
	return out
}

// Prefix returns a new line starting with text in style followed by l.
func (l Line) Prefix(text string, style Style) Line {
	out := make(Line, 0, len(l)+1)
	out = out.Append(text, style)
	for _, seg := range l {
		out = out.Append(seg.Text, seg.Style)
	}
	return out
}

// Plain splits text on newlines into unstyled lines. An empty string yields
// one empty line.
func Plain(text string, style Style) []Line {
	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, part := range parts {
		lines[i] = Line(nil).Append(part, style)
	}
	return lines
}

// PlainText joins the plain text of lines with newlines.
func PlainText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Plain()
	}
	return strings.Join(parts, "\n")
}
