package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// grabber proportions: 36 points wide on a typical 390 point screen
const grabberRatio = 36.0 / 390.0

// SheetContent is what the sheet box shows
type SheetContent struct {
	Width        int
	Rows         int
	Grabber      bool
	CornerRadius float64
	Title        string
	Body         []string
}

// RenderSheet draws the sheet as Rows lines of Width cells. A sheet shorter
// than its border shows only the top edge.
func (r *Renderer) RenderSheet(c SheetContent) []string {
	if c.Rows <= 0 || c.Width < 2 {
		return nil
	}

	border := lipgloss.NormalBorder()
	if c.CornerRadius > 0 {
		border = lipgloss.RoundedBorder()
	}
	if c.Rows == 1 {
		edge := border.TopLeft + strings.Repeat(border.Top, c.Width-2) + border.TopRight
		return []string{r.styles.Sheet.Render(edge)}
	}

	inner := c.Rows - 1
	innerWidth := c.Width - 2

	var content []string
	if c.Grabber {
		content = append(content, r.grabber(innerWidth))
	}
	if c.Title != "" {
		content = append(content, r.styles.Title.Render(c.Title))
	}
	for _, line := range c.Body {
		content = append(content, r.styles.Body.Render(line))
	}
	content = PadLines(content, inner)

	box := r.styles.Sheet.
		Border(border, true, true, false, true).
		Width(innerWidth).
		MaxHeight(c.Rows).
		Render(strings.Join(content, "\n"))
	return PadLines(strings.Split(box, "\n"), c.Rows)
}

func (r *Renderer) grabber(width int) string {
	w := int(float64(width) * grabberRatio)
	if w < 4 {
		w = 4
	}
	if w > width {
		w = width
	}
	bar := r.styles.Grabber.Render(strings.Repeat("━", w))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
