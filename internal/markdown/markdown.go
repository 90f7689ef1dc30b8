// Package markdown renders CommonMark (with GitHub extensions) as styled
// terminal lines. Fenced code is handed to a CodeBlockRenderer supplied
// by the caller.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tnwei/nbread/internal/styled"
	"github.com/tnwei/nbread/internal/textutil"
)

const defaultWidth = 80

// CodeBlockRenderer draws fenced and indented code. language is the first
// word of the fence's info string, or "" when there is none.
type CodeBlockRenderer interface {
	RenderCodeBlock(code, language string, width int) []styled.Line
}

// CodeBlockFunc adapts a function to CodeBlockRenderer.
type CodeBlockFunc func(code, language string, width int) []styled.Line

func (f CodeBlockFunc) RenderCodeBlock(code, language string, width int) []styled.Line {
	return f(code, language, width)
}

// Options configures one conversion.
type Options struct {
	Width int
	// Hyperlinks emits links as OSC 8 targets instead of appending the
	// destination in parentheses.
	Hyperlinks bool
	// CodeBlock draws code blocks. Nil shows them as plain text.
	CodeBlock CodeBlockRenderer
	// Styles defaults to DarkStyles.
	Styles *Styles
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render converts markdown source to styled lines. Block elements are
// separated by one blank line. Control characters in source never reach
// the output.
func Render(source string, opts Options) []styled.Line {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Styles == nil {
		opts.Styles = DarkStyles()
	}
	if opts.CodeBlock == nil {
		opts.CodeBlock = CodeBlockFunc(plainCodeBlock)
	}

	src := []byte(textutil.SanitizeSource(source))
	doc := parser.Parser().Parse(text.NewReader(src))
	r := &renderer{src: src, opts: opts, st: opts.Styles}
	return r.blocks(doc, opts.Width, true)
}

func plainCodeBlock(code, _ string, _ int) []styled.Line {
	return styled.Plain(code, styled.Style{})
}

type renderer struct {
	src  []byte
	opts Options
	st   *Styles
}

// blocks renders the block children of n, separating them with blank
// lines when loose is set.
func (r *renderer) blocks(n ast.Node, width int, loose bool) []styled.Line {
	var out []styled.Line
	first := true
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		lines := r.block(c, width)
		if lines == nil {
			continue
		}
		if !first && loose {
			out = append(out, nil)
		}
		out = append(out, lines...)
		first = false
	}
	return out
}

func (r *renderer) block(n ast.Node, width int) []styled.Line {
	width = max(width, 1)
	switch node := n.(type) {
	case *ast.Heading:
		return r.heading(node, width)
	case *ast.Paragraph, *ast.TextBlock:
		return wrapAll(r.inlines(node, r.st.Text), width)
	case *ast.ThematicBreak:
		return []styled.Line{styled.Line(nil).Append(strings.Repeat("─", width), r.st.Rule)}
	case *ast.FencedCodeBlock:
		return r.opts.CodeBlock.RenderCodeBlock(r.rawLines(node), string(node.Language(r.src)), width)
	case *ast.CodeBlock:
		return r.opts.CodeBlock.RenderCodeBlock(r.rawLines(node), "", width)
	case *ast.Blockquote:
		return r.quote(node, width)
	case *ast.List:
		return r.list(node, width)
	case *ast.HTMLBlock:
		body := r.rawLines(node)
		if node.HasClosure() {
			body = strings.TrimRight(body+"\n"+string(node.ClosureLine.Value(r.src)), " \t\r\n")
		}
		return wrapAll(styled.Plain(body, r.st.HTML), width)
	case *extast.Table:
		return r.table(node, width)
	default:
		if n.HasChildren() {
			return r.blocks(n, width, true)
		}
		return nil
	}
}

func (r *renderer) heading(n *ast.Heading, width int) []styled.Line {
	h := r.st.Headings[min(max(n.Level, 1), 6)-1]
	lines := r.inlines(n, h.Style)
	if len(lines) == 0 {
		lines = []styled.Line{nil}
	}
	lines[0] = lines[0].Prefix(h.Prefix, h.Style)
	last := len(lines) - 1
	lines[last] = lines[last].Append(h.Suffix, h.Style)
	return wrapAll(lines, width)
}

func (r *renderer) quote(n *ast.Blockquote, width int) []styled.Line {
	prefixWidth := len([]rune(r.st.QuotePrefix))
	inner := r.blocks(n, width-prefixWidth, true)
	out := make([]styled.Line, len(inner))
	for i, line := range inner {
		out[i] = line.Restyle(r.st.Quote).Prefix(r.st.QuotePrefix, r.st.Quote)
	}
	return out
}

func (r *renderer) list(n *ast.List, width int) []styled.Line {
	var out []styled.Line
	number := n.Start
	if number == 0 && n.IsOrdered() {
		number = 1
	}
	first := true
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := r.st.Bullet
		if n.IsOrdered() {
			marker = strconv.Itoa(number) + r.st.Enumeration
			number++
		}
		indent := len([]rune(marker))
		body := r.blocks(item, width-indent, !n.IsTight)
		if len(body) == 0 {
			body = []styled.Line{nil}
		}
		if !first && !n.IsTight {
			out = append(out, nil)
		}
		first = false
		pad := strings.Repeat(" ", indent)
		for i, line := range body {
			if i == 0 {
				out = append(out, line.Prefix(marker, r.st.Text))
			} else {
				out = append(out, line.Prefix(pad, styled.Style{}))
			}
		}
	}
	return out
}

// rawLines joins the literal lines of a block, trailing whitespace removed.
func (r *renderer) rawLines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.src))
	}
	return strings.TrimRight(b.String(), " \t\r\n")
}

func wrapAll(lines []styled.Line, width int) []styled.Line {
	var out []styled.Line
	for _, line := range lines {
		out = append(out, line.WrapWords(width)...)
	}
	return out
}
