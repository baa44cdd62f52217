package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
}

// NewStyles builds the styles for lg. Colors degrade to plain text when lg
// uses the Ascii profile.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lg.NewStyle().Bold(true),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lg.NewStyle().Foreground(lipgloss.Color("14")),
		Success: lg.NewStyle().Foreground(lipgloss.Color("10")),
	}
}
