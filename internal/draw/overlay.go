package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Overlay styles the text drawn on top of the playfield.
type Overlay struct {
	box    lipgloss.Style
	title  lipgloss.Style
	hint   lipgloss.Style
	hud    lipgloss.Style
	banner lipgloss.Style
}

// NewOverlay creates the overlay styles for r.
func NewOverlay(r *lipgloss.Renderer) *Overlay {
	return &Overlay{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		hint:   r.NewStyle().Faint(true),
		hud:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Box renders a bordered panel with a title over the body lines.
func (o *Overlay) Box(title string, lines ...string) string {
	body := make([]string, 0, len(lines)+2)
	body = append(body, o.title.Render(title), "")
	for _, line := range lines {
		body = append(body, o.hint.Render(line))
	}
	return o.box.Render(strings.Join(body, "\n"))
}

// HUD renders a status line.
func (o *Overlay) HUD(s string) string {
	return o.hud.Render(s)
}

// Banner renders an attention line, such as the inactivity warning.
func (o *Overlay) Banner(s string) string {
	return o.banner.Render(s)
}

// Center returns the 1-based cell at which block must start to sit in the
// middle of a cols x rows area.
func Center(block string, cols, rows int) (col, row int) {
	w, h := lipgloss.Size(block)
	return max(1, (cols-w)/2+1), max(1, (rows-h)/2+1)
}
