package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorSuccess = lipgloss.Color("#8BC34A") // Lime Green
	colorWarning = lipgloss.Color("#FFC107") // Yellow
	colorInfo    = lipgloss.Color("#2196F3") // Blue
	colorMuted   = lipgloss.Color("#8a94a6")
)

// styles holds the console styles for one output stream. The renderer is
// bound to that stream so pipes and files get plain text.
type styles struct {
	Label   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Label:   r.NewStyle().Bold(true).Foreground(colorInfo),
		Success: r.NewStyle().Bold(true).Foreground(colorSuccess),
		Warning: r.NewStyle().Foreground(colorWarning),
		Muted:   r.NewStyle().Foreground(colorMuted),
	}
}
