// Package layout resolves detents against a container: content sizes,
// resting frames and the at-rest opacity of the dimming overlay.
package layout

import (
	"sort"

	"sheetgrip/internal/detent"
)

// DefaultTopMargin keeps the large detent from reaching the safe-area top edge
const DefaultTopMargin = 10.0

// Calculator resolves detents for one container geometry
type Calculator struct {
	Geometry  Geometry
	TopMargin float64
}

// New returns a calculator using the default top margin
func New(g Geometry) *Calculator {
	return &Calculator{Geometry: g, TopMargin: DefaultTopMargin}
}

// ContentSize returns the sheet size for a detent
func (c *Calculator) ContentSize(d detent.Detent) Size {
	container := c.Geometry.Container
	insets := c.Geometry.SafeArea

	switch d.Kind() {
	case detent.KindMedium:
		return Size{W: container.W, H: container.H/2 + insets.Bottom}
	case detent.KindLarge:
		return Size{W: container.W, H: container.H - insets.Top - c.TopMargin}
	case detent.KindConstant:
		h, _ := d.Height()
		return Size{W: container.W, H: h}
	default:
		return Size{}
	}
}

// Height returns the resolved content height for a detent
func (c *Calculator) Height(d detent.Detent) float64 {
	return c.ContentSize(d).H
}

// MaxHeight is the tallest a sheet may get while dragging
func (c *Calculator) MaxHeight() float64 {
	return c.Geometry.Container.H - c.Geometry.SafeArea.Top
}

// Frame returns the bottom-anchored resting frame of a detent
func (c *Calculator) Frame(d detent.Detent) Rect {
	size := c.ContentSize(d)
	return Rect{
		X: 0,
		Y: c.Geometry.Container.H - size.H,
		W: size.W,
		H: size.H,
	}
}

// OffscreenFrame returns the detent's frame pushed just below the container,
// where a presentation starts.
func (c *Calculator) OffscreenFrame(d detent.Detent) Rect {
	f := c.Frame(d)
	f.Y = c.Geometry.Container.H
	return f
}

// DismissedFrame slides current fully below the container
func (c *Calculator) DismissedFrame(current Rect) Rect {
	current.Y = c.Geometry.Container.H
	return current
}

// DimmingAlpha returns the at-rest opacity of the dimming overlay: 0 when the
// detent is no taller than the largest undimmed detent, otherwise 1.
func (c *Calculator) DimmingAlpha(d, largestUndimmed detent.Detent) float64 {
	if largestUndimmed.IsZero() {
		return 1
	}
	if c.Height(d) <= c.Height(largestUndimmed) {
		return 0
	}
	return 1
}

// Sort returns detents ascending by resolved height. Equal heights keep
// their declaration order.
func (c *Calculator) Sort(detents []detent.Detent) []detent.Detent {
	sorted := make([]detent.Detent, len(detents))
	copy(sorted, detents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.Height(sorted[i]) < c.Height(sorted[j])
	})
	return sorted
}

// Smallest returns the shortest detent, or None for an empty list
func (c *Calculator) Smallest(detents []detent.Detent) detent.Detent {
	sorted := c.Sort(detents)
	if len(sorted) == 0 {
		return detent.None
	}
	return sorted[0]
}

// Largest returns the tallest detent, or None for an empty list
func (c *Calculator) Largest(detents []detent.Detent) detent.Detent {
	sorted := c.Sort(detents)
	if len(sorted) == 0 {
		return detent.None
	}
	return sorted[len(sorted)-1]
}
