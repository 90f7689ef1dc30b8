package markdown

import (
	"strings"

	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/tnwei/nbread/internal/styled"
)

// table lays out a GFM table with one space of padding around each cell.
// Columns are shrunk from the widest down when the table does not fit.
func (r *renderer) table(n *extast.Table, width int) []styled.Line {
	var rows [][]styled.Line
	header := -1
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []styled.Line
		base := r.st.Text
		if _, ok := row.(*extast.TableHeader); ok {
			header = len(rows)
			base = base.Merge(r.st.Strong)
		}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			lines := r.inlines(cell, base)
			var line styled.Line
			for i, l := range lines {
				if i > 0 {
					line = line.Append(" ", base)
				}
				for _, seg := range l {
					line = line.Append(seg.Text, seg.Style)
				}
			}
			cells = append(cells, line)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}

	cols := len(n.Alignments)
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], cell.Width())
		}
	}
	fitColumns(widths, width-(cols-1)-2*cols)

	divider := r.st.TableDivider
	var out []styled.Line
	for idx, row := range rows {
		var line styled.Line
		for i := 0; i < cols; i++ {
			var cell styled.Line
			if i < len(row) {
				cell = row[i].Truncate(widths[i])
			}
			if i > 0 {
				line = line.Append(divider, r.st.Table)
			}
			line = line.Append(" ", styled.Style{})
			line = appendAligned(line, cell, widths[i], alignment(n, i))
			line = line.Append(" ", styled.Style{})
		}
		out = append(out, line)
		if idx == header {
			var sep strings.Builder
			for i, w := range widths {
				if i > 0 {
					sep.WriteString("┼")
				}
				sep.WriteString(strings.Repeat("─", w+2))
			}
			out = append(out, styled.Line(nil).Append(sep.String(), r.st.Table))
		}
	}
	return out
}

func alignment(n *extast.Table, col int) extast.Alignment {
	if col < len(n.Alignments) {
		return n.Alignments[col]
	}
	return extast.AlignNone
}

func appendAligned(line, cell styled.Line, width int, align extast.Alignment) styled.Line {
	missing := max(width-cell.Width(), 0)
	left := 0
	switch align {
	case extast.AlignRight:
		left = missing
	case extast.AlignCenter:
		left = missing / 2
	}
	line = line.Append(strings.Repeat(" ", left), styled.Style{})
	for _, seg := range cell {
		line = line.Append(seg.Text, seg.Style)
	}
	return line.Append(strings.Repeat(" ", missing-left), styled.Style{})
}

// fitColumns shrinks the widest column one cell at a time until the total
// fits in budget. Columns never go below one cell.
func fitColumns(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}
