package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/tnwei/nbread/internal/styled"
)

// Heading is the decoration of one heading level.
type Heading struct {
	Style  styled.Style
	Prefix string
	Suffix string
}

// Styles is the palette used for markdown elements.
type Styles struct {
	Text      styled.Style
	Headings  [6]Heading
	Emph      styled.Style
	Strong    styled.Style
	Strike    styled.Style
	Code      styled.Style
	Link      styled.Style
	LinkText  styled.Style
	Image     styled.Style
	ImageText styled.Style
	Quote     styled.Style
	Rule      styled.Style
	HTML      styled.Style
	Table     styled.Style

	Bullet       string
	Enumeration  string
	Ticked       string
	Unticked     string
	QuotePrefix  string
	CodePadding  string
	TableDivider string
}

// DarkStyles follows glamour's dark palette.
func DarkStyles() *Styles {
	return FromStyleConfig(glamourstyles.DarkStyleConfig)
}

// LightStyles follows glamour's light palette.
func LightStyles() *Styles {
	return FromStyleConfig(glamourstyles.LightStyleConfig)
}

// FromStyleConfig converts a glamour style configuration.
func FromStyleConfig(cfg ansi.StyleConfig) *Styles {
	s := &Styles{
		Text:      primitive(cfg.Text),
		Emph:      primitive(cfg.Emph),
		Strong:    primitive(cfg.Strong),
		Strike:    primitive(cfg.Strikethrough),
		Code:      primitive(cfg.Code.StylePrimitive),
		Link:      primitive(cfg.Link),
		LinkText:  primitive(cfg.LinkText),
		Image:     primitive(cfg.Image),
		ImageText: primitive(cfg.ImageText),
		Quote:     primitive(cfg.BlockQuote.StylePrimitive),
		Rule:      primitive(cfg.HorizontalRule),
		HTML:      primitive(cfg.HTMLBlock.StylePrimitive),
		Table:     primitive(cfg.Table.StylePrimitive),

		Bullet:       orDefault(cfg.Item.BlockPrefix, "• "),
		Enumeration:  orDefault(cfg.Enumeration.BlockPrefix, ". "),
		Ticked:       orDefault(cfg.Task.Ticked, "[✓] "),
		Unticked:     orDefault(cfg.Task.Unticked, "[ ] "),
		QuotePrefix:  "│ ",
		CodePadding:  cfg.Code.Prefix,
		TableDivider: "│",
	}
	if cfg.BlockQuote.IndentToken != nil && *cfg.BlockQuote.IndentToken != "" {
		s.QuotePrefix = *cfg.BlockQuote.IndentToken
	}
	if cfg.Table.ColumnSeparator != nil && *cfg.Table.ColumnSeparator != "" {
		s.TableDivider = *cfg.Table.ColumnSeparator
	}

	base := primitive(cfg.Heading.StylePrimitive)
	levels := []ansi.StyleBlock{cfg.H1, cfg.H2, cfg.H3, cfg.H4, cfg.H5, cfg.H6}
	for i, h := range levels {
		s.Headings[i] = Heading{
			Style:  base.Merge(primitive(h.StylePrimitive)),
			Prefix: h.Prefix,
			Suffix: h.Suffix,
		}
	}
	return s
}

func primitive(p ansi.StylePrimitive) styled.Style {
	var st styled.Style
	st.Fg = parseColor(p.Color)
	st.Bg = parseColor(p.BackgroundColor)
	flags := []struct {
		set  *bool
		attr styled.Attr
	}{
		{p.Bold, styled.AttrBold},
		{p.Faint, styled.AttrDim},
		{p.Italic, styled.AttrItalic},
		{p.Underline, styled.AttrUnderline},
		{p.Blink, styled.AttrBlink},
		{p.Inverse, styled.AttrReverse},
		{p.CrossedOut, styled.AttrStrike},
		{p.Conceal, styled.AttrConceal},
	}
	for _, f := range flags {
		if f.set != nil && *f.set {
			st.Attrs |= f.attr
		}
	}
	return st
}

// parseColor accepts a palette index ("203") or a hex colour ("#ff00aa").
func parseColor(s *string) tcell.Color {
	if s == nil {
		return tcell.ColorDefault
	}
	v := strings.TrimSpace(*s)
	if strings.HasPrefix(v, "#") {
		return tcell.GetColor(v)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(n)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
