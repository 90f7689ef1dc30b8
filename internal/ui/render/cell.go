package render

import (
	"strings"

	"github.com/tnwei/nbread/internal/highlight"
	"github.com/tnwei/nbread/internal/markdown"
	"github.com/tnwei/nbread/internal/notebook"
	"github.com/tnwei/nbread/internal/styled"
	"github.com/tnwei/nbread/internal/textutil"
)

// codeBlockInset is the padding on each side of code inside markdown.
const codeBlockInset = 4

// CellOptions are the per-run settings for cell rendering.
type CellOptions struct {
	Theme        *highlight.Theme
	Lexer        string
	Head         int
	Tail         int
	LineNumbers  bool
	IndentGuides bool
	WordWrap     bool
	Hyperlinks   bool
	Markdown     *markdown.Styles
	Palette      Palette
}

// CellRenderer turns cells into blocks.
type CellRenderer struct {
	doc  *notebook.Document
	opts CellOptions
}

// NewCellRenderer prepares a renderer for cells of doc.
func NewCellRenderer(doc *notebook.Document, opts CellOptions) *CellRenderer {
	if opts.Theme == nil {
		opts.Theme, _ = highlight.LookupTheme(highlight.ThemeANSIDark)
	}
	if opts.Markdown == nil {
		opts.Markdown = markdown.DarkStyles()
	}
	return &CellRenderer{doc: doc, opts: opts}
}

// Render returns the annotation (when the cell has an execution_count key)
// followed by the cell body.
func (r *CellRenderer) Render(cell notebook.Cell) ([]Block, error) {
	var blocks []Block
	if cell.ExecutionCount.Present {
		blocks = append(blocks, r.annotation(cell.ExecutionCount))
	}

	switch cell.Kind {
	case notebook.CellCode:
		body, err := r.code(cell)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, body)
	case notebook.CellMarkdown:
		blocks = append(blocks, r.markdown(cell))
	default:
		blocks = append(blocks, Text(styled.Plain(textutil.SanitizeSource(cell.Source), styled.Style{})...))
	}
	return blocks, nil
}

func (r *CellRenderer) annotation(count notebook.ExecutionCount) Block {
	p := r.opts.Palette
	line := styled.Line(nil).
		Append("In [", p.InLabel).
		Append(count.Label(), p.InCount).
		Append("]:", p.InLabel)
	return Text(line)
}

func (r *CellRenderer) code(cell notebook.Cell) (Block, error) {
	lineRange, err := ResolveLineRange(r.opts.Head, r.opts.Tail, countLines(cell.Source))
	if err != nil {
		return nil, err
	}
	opts := highlight.Options{
		Theme:        r.opts.Theme,
		Language:     r.doc.LanguageHint(cell, r.opts.Lexer),
		Analyse:      true,
		LineNumbers:  r.opts.LineNumbers,
		IndentGuides: r.opts.IndentGuides,
		WordWrap:     r.opts.WordWrap,
		Range:        lineRange,
	}
	return PanelBlock{
		Body: func(width int) []styled.Line {
			o := opts
			o.Width = width
			return highlight.Render(cell.Source, o)
		},
		Border: r.opts.Palette.Border,
	}, nil
}

func (r *CellRenderer) markdown(cell notebook.Cell) Block {
	source := cell.Source
	return LinesBlock{Build: func(width int) []styled.Line {
		return markdown.Render(source, markdown.Options{
			Width:      width,
			Hyperlinks: r.opts.Hyperlinks,
			Styles:     r.opts.Markdown,
			CodeBlock:  codeBlocks{theme: r.opts.Theme},
		})
	}}
}

// codeBlocks highlights fenced code inside markdown, word-wrapped and
// inset on both sides.
type codeBlocks struct {
	theme *highlight.Theme
}

func (c codeBlocks) RenderCodeBlock(code, language string, width int) []styled.Line {
	inner := max(width-2*codeBlockInset, 1)
	pad := strings.Repeat(" ", codeBlockInset)
	lines := highlight.Render(code, highlight.Options{
		Theme:    c.theme,
		Language: language,
		WordWrap: true,
		Width:    inner,
	})
	for i, line := range lines {
		lines[i] = line.Prefix(pad, styled.Style{}).Append(pad, styled.Style{})
	}
	return lines
}
