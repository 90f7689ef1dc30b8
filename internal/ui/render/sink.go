package render

import (
	"bufio"
	"io"
)

// Sink receives blocks in document order.
type Sink interface {
	Emit(b Block) error
}

// DirectSink writes blocks straight to a writer, normally stdout.
type DirectSink struct {
	console Console
	w       *bufio.Writer
}

// NewDirectSink returns a sink rendering for console onto w.
func NewDirectSink(w io.Writer, console Console) *DirectSink {
	return &DirectSink{console: console, w: bufio.NewWriter(w)}
}

// Emit renders b and flushes it.
func (s *DirectSink) Emit(b Block) error {
	if err := WriteLines(s.w, b.Render(s.console), ""); err != nil {
		return err
	}
	return s.w.Flush()
}

// WriteLines writes each line with prefix and a trailing newline.
func WriteLines(w *bufio.Writer, lines []string, prefix string) error {
	for _, line := range lines {
		if _, err := w.WriteString(prefix); err != nil {
			return err
		}
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
