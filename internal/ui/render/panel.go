package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tnwei/nbread/internal/styled"
)

// panelChrome is the width taken by the border and the one-cell padding on
// each side.
const panelChrome = 4

// PanelBlock draws its body inside a rounded border.
type PanelBlock struct {
	// Body receives the inner width and returns lines exactly that wide.
	Body   func(width int) []styled.Line
	Border lipgloss.TerminalColor
}

func (b PanelBlock) Render(c Console) []string {
	inner := max(c.Width-panelChrome, 1)
	body := strings.Join(c.Encoder.Lines(b.Body(inner)), "\n")

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(c.Encoder.Profile)
	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(inner + 2)
	if b.Border != nil {
		style = style.BorderForeground(b.Border)
	}
	return strings.Split(style.Render(body), "\n")
}
