package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/tnwei/nbread/internal/styled"
)

const (
	ThemeANSIDark  = "ansi_dark"
	ThemeANSILight = "ansi_light"
)

// Standard terminal palette slots. tcell's named colours use the X11
// names, which do not line up with the 16 ANSI slots.
var (
	ansiRed           = tcell.PaletteColor(1)
	ansiGreen         = tcell.PaletteColor(2)
	ansiYellow        = tcell.PaletteColor(3)
	ansiBlue          = tcell.PaletteColor(4)
	ansiMagenta       = tcell.PaletteColor(5)
	ansiCyan          = tcell.PaletteColor(6)
	ansiWhite         = tcell.PaletteColor(7)
	ansiBrightBlack   = tcell.PaletteColor(8)
	ansiBrightRed     = tcell.PaletteColor(9)
	ansiBrightGreen   = tcell.PaletteColor(10)
	ansiBrightBlue    = tcell.PaletteColor(12)
	ansiBrightMagenta = tcell.PaletteColor(13)
	ansiBrightCyan    = tcell.PaletteColor(14)
)

func fg(c tcell.Color) styled.Style { return styled.Style{Fg: c} }

var ansiDarkTokens = map[chroma.TokenType]styled.Style{
	chroma.TextWhitespace:    fg(ansiBrightBlack),
	chroma.Comment:           {Attrs: styled.AttrDim},
	chroma.CommentPreproc:    fg(ansiBrightCyan),
	chroma.Keyword:           fg(ansiBrightBlue),
	chroma.KeywordType:       fg(ansiBrightCyan),
	chroma.OperatorWord:      fg(ansiBrightMagenta),
	chroma.NameBuiltin:       fg(ansiBrightCyan),
	chroma.NameFunction:      fg(ansiBrightGreen),
	chroma.NameNamespace:     fg(ansiBrightCyan).With(styled.AttrUnderline),
	chroma.NameClass:         fg(ansiBrightGreen).With(styled.AttrUnderline),
	chroma.NameException:     fg(ansiBrightCyan),
	chroma.NameDecorator:     fg(ansiBrightMagenta).With(styled.AttrBold),
	chroma.NameVariable:      fg(ansiBrightRed),
	chroma.NameConstant:      fg(ansiBrightRed),
	chroma.NameAttribute:     fg(ansiBrightCyan),
	chroma.NameTag:           fg(ansiBrightBlue),
	chroma.LiteralString:     fg(ansiYellow),
	chroma.LiteralNumber:     fg(ansiBrightBlue),
	chroma.GenericDeleted:    fg(ansiBrightRed),
	chroma.GenericInserted:   fg(ansiBrightGreen),
	chroma.GenericHeading:    {Attrs: styled.AttrBold},
	chroma.GenericSubheading: fg(ansiBrightMagenta).With(styled.AttrBold),
	chroma.GenericPrompt:     {Attrs: styled.AttrBold},
	chroma.GenericError:      fg(ansiBrightRed),
	chroma.Error:             fg(ansiRed).With(styled.AttrUnderline),
}

var ansiLightTokens = map[chroma.TokenType]styled.Style{
	chroma.TextWhitespace:    fg(ansiWhite),
	chroma.Comment:           {Attrs: styled.AttrDim},
	chroma.CommentPreproc:    fg(ansiCyan),
	chroma.Keyword:           fg(ansiBlue),
	chroma.KeywordType:       fg(ansiCyan),
	chroma.OperatorWord:      fg(ansiMagenta),
	chroma.NameBuiltin:       fg(ansiCyan),
	chroma.NameFunction:      fg(ansiGreen),
	chroma.NameNamespace:     fg(ansiCyan).With(styled.AttrUnderline),
	chroma.NameClass:         fg(ansiGreen).With(styled.AttrUnderline),
	chroma.NameException:     fg(ansiCyan),
	chroma.NameDecorator:     fg(ansiMagenta).With(styled.AttrBold),
	chroma.NameVariable:      fg(ansiRed),
	chroma.NameConstant:      fg(ansiRed),
	chroma.NameAttribute:     fg(ansiCyan),
	chroma.NameTag:           fg(ansiBlue),
	chroma.LiteralString:     fg(ansiYellow),
	chroma.LiteralNumber:     fg(ansiBlue),
	chroma.GenericDeleted:    fg(ansiRed),
	chroma.GenericInserted:   fg(ansiGreen),
	chroma.GenericHeading:    {Attrs: styled.AttrBold},
	chroma.GenericSubheading: fg(ansiMagenta).With(styled.AttrBold),
	chroma.GenericPrompt:     {Attrs: styled.AttrBold},
	chroma.GenericError:      fg(ansiRed),
	chroma.Error:             fg(ansiRed).With(styled.AttrUnderline),
}

// tokenParents links sub-types that chroma numbers outside their parent's
// sub-category.
var tokenParents = map[chroma.TokenType]chroma.TokenType{
	chroma.NameBuiltinPseudo:    chroma.NameBuiltin,
	chroma.NameFunctionMagic:    chroma.NameFunction,
	chroma.NameVariableClass:    chroma.NameVariable,
	chroma.NameVariableGlobal:   chroma.NameVariable,
	chroma.NameVariableInstance: chroma.NameVariable,
	chroma.NameVariableMagic:    chroma.NameVariable,
}

// Theme maps token types to styles. The two ANSI themes use the
// terminal's own palette and no background; every other name is looked up
// in the chroma style registry.
type Theme struct {
	Name string

	// Background is applied under every cell of the code area.
	Background styled.Style
	// LineNumber styles the gutter.
	LineNumber styled.Style
	// Guide styles indent guides.
	Guide styled.Style

	tokens map[chroma.TokenType]styled.Style
	chroma *chroma.Style
}

// LookupTheme returns the named theme or an error listing valid names.
func LookupTheme(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case ThemeANSIDark:
		return newANSITheme(ThemeANSIDark, ansiDarkTokens), nil
	case ThemeANSILight:
		return newANSITheme(ThemeANSILight, ansiLightTokens), nil
	}

	for key, cs := range styles.Registry {
		if strings.EqualFold(key, name) {
			return newChromaTheme(key, cs), nil
		}
	}
	return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
}

// ThemeNames lists every accepted theme name, sorted.
func ThemeNames() []string {
	names := append([]string{ThemeANSIDark, ThemeANSILight}, styles.Names()...)
	sort.Strings(names)
	return names
}

func newANSITheme(name string, tokens map[chroma.TokenType]styled.Style) *Theme {
	t := &Theme{Name: name, tokens: tokens}
	t.LineNumber = styled.Style{Attrs: styled.AttrDim}
	t.Guide = t.Style(chroma.Comment).With(styled.AttrDim)
	return t
}

func newChromaTheme(name string, cs *chroma.Style) *Theme {
	t := &Theme{Name: name, chroma: cs}
	bg := cs.Get(chroma.Background)
	if bg.Background.IsSet() {
		t.Background = styled.Style{Bg: chromaColor(bg.Background)}
	}
	t.LineNumber = t.Background.Merge(entryStyle(cs.Get(chroma.LineNumbers))).With(styled.AttrDim)
	t.Guide = t.Style(chroma.Comment).With(styled.AttrDim)
	return t
}

// Style returns the style for a token type, falling back to its
// sub-category and then its category.
func (t *Theme) Style(tt chroma.TokenType) styled.Style {
	if t.chroma != nil {
		return t.Background.Merge(entryStyle(t.chroma.Get(tt)))
	}
	if parent, ok := tokenParents[tt]; ok {
		tt = parent
	}
	for _, candidate := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if st, ok := t.tokens[candidate]; ok {
			return st
		}
	}
	return styled.Style{}
}

func entryStyle(e chroma.StyleEntry) styled.Style {
	var st styled.Style
	if e.Colour.IsSet() {
		st.Fg = chromaColor(e.Colour)
	}
	if e.Background.IsSet() {
		st.Bg = chromaColor(e.Background)
	}
	if e.Bold == chroma.Yes {
		st.Attrs |= styled.AttrBold
	}
	if e.Italic == chroma.Yes {
		st.Attrs |= styled.AttrItalic
	}
	if e.Underline == chroma.Yes {
		st.Attrs |= styled.AttrUnderline
	}
	return st
}

func chromaColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
