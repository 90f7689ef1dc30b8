package pager

import (
	"errors"

	"github.com/tnwei/nbread/internal/ui/render"
)

// Inset is the blank margin, in columns, on each side of paged output.
const Inset = 1

// Sink feeds rendered blocks to a Session.
type Sink struct {
	session *Session
	console render.Console
	prefix  string
}

// NewSink renders blocks for console narrowed by Inset.
func NewSink(s *Session, console render.Console) *Sink {
	return &Sink{session: s, console: console.Inset(Inset), prefix: " "}
}

// Emit renders b and writes it to the pager.
func (k *Sink) Emit(b render.Block) error {
	return k.session.WriteLines(b.Render(k.console), k.prefix)
}

// Run starts the pager described by argv, hands fn a sink feeding it, and
// guarantees the pager is cleaned up on every path out. A pager that goes
// away early is not an error. Panics in fn are re-raised after cleanup.
func Run(argv []string, opts Options, console render.Console, fn func(render.Sink) error) error {
	s, err := Start(argv, opts)
	if err != nil {
		return err
	}

	completed := false
	defer func() {
		if !completed {
			_ = s.Abort()
		}
	}()

	if err := fn(NewSink(s, console)); err != nil {
		completed = true
		cleanupErr := s.Abort()
		if errors.Is(err, ErrClosed) {
			return cleanupErr
		}
		return err
	}
	completed = true
	return s.Close()
}
