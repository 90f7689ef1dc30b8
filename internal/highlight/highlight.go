// Package highlight turns source code into styled lines: tokenising with
// chroma, then applying the theme, indent guides, the line window, line
// numbers and wrapping or cropping to the available width.
package highlight

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/tnwei/nbread/internal/styled"
	"github.com/tnwei/nbread/internal/textutil"
)

const guideChar = "│"

// LineRange is a 1-based window of lines. Lines Start through End are
// shown; values outside the source are clamped, so Start may be below 1.
type LineRange struct {
	Start int
	End   int
}

// Options controls one highlighting call.
type Options struct {
	Theme *Theme
	// Language is a lexer name, alias or file extension.
	Language string
	// Analyse lets chroma guess the language when Language is unknown.
	Analyse bool

	LineNumbers  bool
	IndentGuides bool
	WordWrap     bool
	// Range limits the lines shown. Nil shows everything.
	Range *LineRange
	// Width is the number of cells available, gutter included.
	Width int
	// TabSize defaults to textutil.DefaultTabWidth.
	TabSize int
}

// Render highlights source. Every returned line is exactly opts.Width
// cells wide when Width is positive.
func Render(source string, opts Options) []styled.Line {
	theme := opts.Theme
	if theme == nil {
		theme, _ = LookupTheme(ThemeANSIDark)
	}
	tabSize := opts.TabSize
	if tabSize <= 0 {
		tabSize = textutil.DefaultTabWidth
	}

	code := textutil.ExpandTabs(textutil.SanitizeSource(source), tabSize)
	lexer := ResolveLexer(opts.Language, code, opts.Analyse)
	lines := tokenLines(lexer, code, theme)

	if opts.IndentGuides {
		lines = indentGuides(lines, tabSize, theme.Guide)
	}

	offset := 0
	if opts.Range != nil {
		offset = max(0, opts.Range.Start-1)
		end := min(opts.Range.End, len(lines))
		if offset >= end {
			lines = nil
		} else {
			lines = lines[offset:end]
		}
	}

	gutter := 0
	if opts.LineNumbers {
		gutter = len(strconv.Itoa(1+strings.Count(code, "\n"))) + 2
	}
	codeWidth := opts.Width - gutter
	if opts.Width > 0 && codeWidth < 1 {
		codeWidth = 1
	}

	var out []styled.Line
	for i, line := range lines {
		var rows []styled.Line
		switch {
		case opts.Width <= 0:
			rows = []styled.Line{line}
		case opts.WordWrap:
			rows = line.WrapWords(codeWidth)
		default:
			rows = []styled.Line{line.Truncate(codeWidth)}
		}
		for j, row := range rows {
			if opts.Width > 0 {
				row = row.Pad(codeWidth, theme.Background)
			}
			if opts.LineNumbers {
				number := ""
				if j == 0 {
					number = strconv.Itoa(offset + i + 1)
				}
				label := " " + strings.Repeat(" ", gutter-2-len(number)) + number + " "
				row = row.Prefix(label, theme.LineNumber)
			}
			out = append(out, row)
		}
	}
	return out
}

// tokenLines splits the token stream into lines. A trailing newline in
// code yields a trailing empty line.
func tokenLines(lexer chroma.Lexer, code string, theme *Theme) []styled.Line {
	want := strings.Count(code, "\n") + 1
	lines := make([]styled.Line, 1, want)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return styled.Plain(code, theme.Background)
	}
	for _, tok := range it.Tokens() {
		st := theme.Style(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for k, part := range parts {
			if k > 0 {
				lines = append(lines, nil)
			}
			last := len(lines) - 1
			lines[last] = lines[last].Append(part, st)
		}
	}

	// Lexers may add a final newline of their own.
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines
}

// indentGuides replaces each full indent level of leading spaces with a
// guide. Blank lines take the indent of the next non-blank line; trailing
// blank lines get none.
func indentGuides(lines []styled.Line, size int, style styled.Style) []styled.Line {
	out := make([]styled.Line, 0, len(lines))
	blank := 0
	for _, line := range lines {
		plain := line.Plain()
		indent := len(plain) - len(strings.TrimLeft(plain, " "))
		if indent == len(plain) {
			blank++
			continue
		}
		levels := indent / size
		guide := strings.Repeat(guideChar+strings.Repeat(" ", size-1), levels)
		for ; blank > 0; blank-- {
			out = append(out, styled.Line(nil).Append(guide, style))
		}
		if levels > 0 {
			line = dropLeading(line, levels*size).Prefix(guide, style)
		}
		out = append(out, line)
	}
	for ; blank > 0; blank-- {
		out = append(out, nil)
	}
	return out
}

// dropLeading removes n leading bytes from a line whose first n bytes are
// ASCII spaces.
func dropLeading(line styled.Line, n int) styled.Line {
	out := make(styled.Line, 0, len(line))
	for _, seg := range line {
		if n >= len(seg.Text) {
			n -= len(seg.Text)
			continue
		}
		out = append(out, styled.Segment{Text: seg.Text[n:], Style: seg.Style})
		n = 0
	}
	return out
}
