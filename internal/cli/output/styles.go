package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette.
var (
	colorError   = lipgloss.Color("#E74C3C")
	colorWarning = lipgloss.Color("#F4D03F")
	colorInfo    = lipgloss.Color("#3498DB")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorMuted   = lipgloss.Color("#7F8C8D")
	colorAccent  = lipgloss.Color("#20B9B4")
)

// Styles are the text styles of a renderer.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
}

// NewStyles returns styles bound to w. Colors are dropped unless color is
// set and the environment allows them.
func NewStyles(w io.Writer, color bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !color || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(colorAccent),
		Header2: lr.NewStyle().Bold(true).Underline(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(colorMuted),
		Path:    lr.NewStyle().Bold(true).Foreground(colorAccent),
		Success: lr.NewStyle().Foreground(colorSuccess),
		Error:   lr.NewStyle().Bold(true).Foreground(colorError),
		Warning: lr.NewStyle().Foreground(colorWarning),
		Info:    lr.NewStyle().Foreground(colorInfo),
		Added:   lr.NewStyle().Foreground(colorSuccess),
		Removed: lr.NewStyle().Foreground(colorError),
	}
}
