package render

import (
	"context"
	"io"
	"log/slog"

	"github.com/tnwei/nbread/internal/notebook"
)

// Pipeline walks a document in order and feeds its blocks to a sink.
type Pipeline struct {
	Cells   *CellRenderer
	Outputs *OutputRenderer
	Logger  *slog.Logger
}

// Run renders every cell of doc followed by its outputs. A blank line
// precedes each cell unless the previous item was a stream output.
// Output types that are not shown are skipped without affecting that rule.
func (p *Pipeline) Run(ctx context.Context, doc *notebook.Document, sink Sink) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	newLine := true
	for i, cell := range doc.Cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		if newLine {
			if err := sink.Emit(BlankBlock{}); err != nil {
				return err
			}
		}

		blocks, err := p.Cells.Render(cell)
		if err != nil {
			return err
		}
		for _, b := range blocks {
			if err := sink.Emit(b); err != nil {
				return err
			}
		}
		newLine = true

		for j, out := range cell.Outputs {
			block, nl, ok := p.Outputs.Render(out)
			if !ok {
				logger.Debug("skipping output", "cell", i, "output", j, "type", out.Type)
				continue
			}
			if err := sink.Emit(block); err != nil {
				return err
			}
			newLine = nl
		}
	}
	return nil
}
