package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/tnwei/nbread/internal/styled"
)

// Palette holds the colours of everything the renderer draws itself, as
// opposed to syntax and markdown colours which come from their themes.
type Palette struct {
	InLabel  styled.Style
	InCount  styled.Style
	OutLabel styled.Style
	OutCount styled.Style
	Border   lipgloss.TerminalColor
}

// DefaultPalette returns the standard annotation colours.
func DefaultPalette() Palette {
	return Palette{
		InLabel:  styled.Style{Fg: tcell.PaletteColor(2)},
		InCount:  styled.Style{Fg: tcell.NewHexColor(0x66ff00)},
		OutLabel: styled.Style{Fg: tcell.PaletteColor(1)},
		OutCount: styled.Style{Fg: tcell.NewHexColor(0xee4b2b)},
		Border:   lipgloss.ANSIColor(8),
	}
}
