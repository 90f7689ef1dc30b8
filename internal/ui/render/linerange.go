package render

import (
	"github.com/tnwei/nbread/internal/config"
	"github.com/tnwei/nbread/internal/highlight"
)

// ResolveLineRange turns head/tail options into the window of a cell's
// lines to show. Zero means "not set". A nil range shows every line.
//
// The tail window is [total-tail+2, total+1], which starts at or below
// line 1 when tail >= total; the highlighter clamps it.
func ResolveLineRange(head, tail, totalLines int) (*highlight.LineRange, error) {
	switch {
	case head > 0 && tail > 0:
		return nil, config.ErrHeadAndTail()
	case head > 0:
		return &highlight.LineRange{Start: 1, End: head}, nil
	case tail > 0:
		return &highlight.LineRange{Start: totalLines - tail + 2, End: totalLines + 1}, nil
	default:
		return nil, nil
	}
}

// countLines counts lines the way a reader would: a trailing newline does
// not start another line and empty text has none.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && i < len(s)-1 {
			n++
		}
	}
	return n
}
