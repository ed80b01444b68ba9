package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Body        lipgloss.Style
	Sheet       lipgloss.Style
	Grabber     lipgloss.Style
	Background  lipgloss.Style
	Status      lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusWarn  lipgloss.Style
	Prompt      lipgloss.Style
	Help        lipgloss.Style
	HelpBox     lipgloss.Style
	Confirm     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Body:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Sheet:       lipgloss.NewStyle().BorderForeground(lipgloss.Color("99")),
		Grabber:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Background:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusValue: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StatusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:        lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}
