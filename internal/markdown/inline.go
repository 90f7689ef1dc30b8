package markdown

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/tnwei/nbread/internal/styled"
)

// inlineWriter collects inline content into lines, starting a new line at
// hard breaks.
type inlineWriter struct {
	lines []styled.Line
}

func (w *inlineWriter) write(s string, st styled.Style) {
	if len(w.lines) == 0 {
		w.lines = []styled.Line{nil}
	}
	last := len(w.lines) - 1
	w.lines[last] = w.lines[last].Append(s, st)
}

func (w *inlineWriter) newline() {
	if len(w.lines) == 0 {
		w.lines = []styled.Line{nil}
	}
	w.lines = append(w.lines, nil)
}

// inlines renders the inline children of n with base as the outer style.
func (r *renderer) inlines(n ast.Node, base styled.Style) []styled.Line {
	w := &inlineWriter{}
	r.inlineChildren(w, n, base)
	return w.lines
}

func (r *renderer) inlineChildren(w *inlineWriter, n ast.Node, st styled.Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(w, c, st)
	}
}

func (r *renderer) inline(w *inlineWriter, n ast.Node, st styled.Style) {
	switch node := n.(type) {
	case *ast.Text:
		w.write(string(node.Segment.Value(r.src)), st)
		switch {
		case node.HardLineBreak():
			w.newline()
		case node.SoftLineBreak():
			w.write(" ", st)
		}
	case *ast.String:
		w.write(string(node.Value), st)
	case *ast.CodeSpan:
		code := st.Merge(r.st.Code)
		w.write(r.st.CodePadding, code)
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				w.write(string(t.Segment.Value(r.src)), code)
			case *ast.String:
				w.write(string(t.Value), code)
			}
		}
		w.write(r.st.CodePadding, code)
	case *ast.Emphasis:
		if node.Level >= 2 {
			r.inlineChildren(w, node, st.Merge(r.st.Strong))
		} else {
			r.inlineChildren(w, node, st.Merge(r.st.Emph))
		}
	case *extast.Strikethrough:
		r.inlineChildren(w, node, st.Merge(r.st.Strike))
	case *ast.Link:
		r.link(w, node, string(node.Destination), st)
	case *ast.AutoLink:
		url := string(node.URL(r.src))
		linked := st.Merge(r.st.Link)
		if r.opts.Hyperlinks {
			linked.Link = url
		}
		w.write(string(node.Label(r.src)), linked)
	case *ast.Image:
		alt := st.Merge(r.st.ImageText)
		r.inlineChildren(w, node, alt)
		if dest := string(node.Destination); dest != "" && !r.opts.Hyperlinks {
			w.write(" ("+dest+")", st.Merge(r.st.Image))
		}
	case *ast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			w.write(string(seg.Value(r.src)), st.Merge(r.st.HTML))
		}
	case *extast.TaskCheckBox:
		if node.IsChecked {
			w.write(r.st.Ticked, st)
		} else {
			w.write(r.st.Unticked, st)
		}
	default:
		r.inlineChildren(w, n, st)
	}
}

func (r *renderer) link(w *inlineWriter, n ast.Node, dest string, st styled.Style) {
	label := st.Merge(r.st.LinkText)
	if r.opts.Hyperlinks && dest != "" {
		label.Link = dest
		r.inlineChildren(w, n, label)
		return
	}
	r.inlineChildren(w, n, label)
	if dest != "" {
		w.write(" ("+dest+")", st.Merge(r.st.Link))
	}
}
