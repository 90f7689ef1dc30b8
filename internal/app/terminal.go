package app

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tnwei/nbread/internal/config"
)

const defaultWidth = 80

type fdWriter interface {
	io.Writer
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalWidth prefers the terminal's own size, then COLUMNS.
func terminalWidth(w io.Writer, tty bool, getenv func(string) string) int {
	if f, ok := w.(*os.File); ok && tty {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if n := config.Columns(getenv); n > 0 {
		return n
	}
	return defaultWidth
}

// colorProfile picks how much colour the output can carry. A terminal
// gets what its environment advertises; anything else gets plain text
// unless colour is forced.
func colorProfile(w io.Writer, tty bool, opts config.Options) termenv.Profile {
	switch {
	case opts.NoColor:
		return termenv.Ascii
	case tty:
		profile := termenv.NewOutput(w).EnvColorProfile()
		if opts.ForceColor && profile == termenv.Ascii {
			return termenv.ANSI
		}
		return profile
	case opts.ForceColor:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}
