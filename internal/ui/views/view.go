package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"sheetgrip/internal/layout"
)

// DefaultBackground fills the screen behind the sheet
const DefaultBackground = "the quick brown fox jumps over the lazy dog"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Presented    bool
	Frame        layout.Rect
	Alpha        float64
	Grabber      bool
	CornerRadius float64
	Title        string
	Body         []string

	ShowStatus     bool
	State          string
	Detent         string
	Progress       float64
	ModalLocked    bool
	Veto           bool
	StatusMessage  string
	BackgroundText string

	ShowHelp   bool
	HelpModel  help.Model
	Keys       help.KeyMap
	Prompt     string
	TextInput  string
	Confirming bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view: the status line, the background dimmed
// by the overlay opacity, the bottom-anchored sheet and the help line.
func (r *Renderer) Render(s ViewState) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}

	bgText := s.BackgroundText
	if bgText == "" {
		bgText = DefaultBackground
	}
	lines := Fill(bgText, s.Width, s.Height)
	for i, line := range lines {
		lines[i] = r.styles.Background.Render(line)
	}
	lines = DimLines(lines, s.Alpha)

	if s.Presented {
		top := SheetTop(s.Frame, s.Height)
		sheet := r.RenderSheet(SheetContent{
			Width:        s.Width,
			Rows:         s.Height - top,
			Grabber:      s.Grabber,
			CornerRadius: s.CornerRadius,
			Title:        s.Title,
			Body:         s.Body,
		})
		lines = Splice(lines, sheet, top)
	}

	if s.ShowStatus {
		lines[0] = r.renderStatus(s)
	}
	lines[len(lines)-1] = r.renderFooter(s)

	if s.ShowHelp {
		s.HelpModel.ShowAll = true
		popup := r.styles.HelpBox.Render(s.HelpModel.View(s.Keys))
		return RenderPopup(popup, s.Width, s.Height)
	}
	return strings.Join(lines, "\n")
}

// SheetTop converts the fractional frame to the first terminal row of the
// sheet, clamped to the screen.
func SheetTop(frame layout.Rect, height int) int {
	top := int(math.Round(frame.Y))
	return max(0, min(height, top))
}

func (r *Renderer) renderStatus(s ViewState) string {
	field := func(k, v string) string {
		return r.styles.StatusKey.Render(k+" ") + r.styles.StatusValue.Render(v)
	}
	parts := []string{
		field("state", s.State),
		field("detent", s.Detent),
		field("progress", fmt.Sprintf("%.2f", s.Progress)),
		field("alpha", fmt.Sprintf("%.2f", s.Alpha)),
	}
	if s.ModalLocked {
		parts = append(parts, r.styles.StatusWarn.Render("locked"))
	}
	if s.Veto {
		parts = append(parts, r.styles.StatusWarn.Render("confirm"))
	}
	if s.StatusMessage != "" {
		parts = append(parts, r.styles.Status.Render(s.StatusMessage))
	}
	line := strings.Join(parts, r.styles.Status.Render(" │ "))
	return lipgloss.NewStyle().MaxWidth(s.Width).Render(line)
}

func (r *Renderer) renderFooter(s ViewState) string {
	var line string
	switch {
	case s.Confirming:
		line = r.styles.Confirm.Render("Dismiss anyway? (y/n)")
	case s.Prompt != "":
		line = r.styles.Prompt.Render(s.Prompt) + s.TextInput
	default:
		s.HelpModel.ShowAll = false
		line = s.HelpModel.View(s.Keys)
	}
	return lipgloss.NewStyle().MaxWidth(s.Width).Render(line)
}
