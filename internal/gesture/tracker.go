// Package gesture turns incremental drag translations into a clamped sheet
// frame, a normalized progress and a continuous dimming opacity.
package gesture

import (
	"math"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/layout"
)

// Sample is the view state produced by one drag update
type Sample struct {
	Frame    layout.Rect
	Progress float64
	Alpha    float64
}

// Release is the final state of a gesture
type Release struct {
	Frame    layout.Rect
	Height   float64
	Progress float64
	Velocity float64
}

// Tracker accumulates drag translations for one gesture at a time
type Tracker struct {
	calc            *layout.Calculator
	largestUndimmed detent.Detent
	frame           layout.Rect
	active          bool
}

// NewTracker creates a tracker bound to a layout calculator
func NewTracker(calc *layout.Calculator, largestUndimmed detent.Detent) *Tracker {
	return &Tracker{calc: calc, largestUndimmed: largestUndimmed}
}

// SetLargestUndimmed changes the detent below which the overlay fades out
func (t *Tracker) SetLargestUndimmed(d detent.Detent) {
	t.largestUndimmed = d
}

// Begin starts a gesture from the sheet's current frame
func (t *Tracker) Begin(frame layout.Rect) {
	t.frame = frame
	t.active = true
}

// Active reports whether a gesture is in progress
func (t *Tracker) Active() bool { return t.active }

// Frame returns the last computed frame
func (t *Tracker) Frame() layout.Rect { return t.frame }

// Update applies a vertical translation delta (positive is downward). The top
// edge is clamped at the safe-area inset and the bottom edge stays anchored to
// the container, so the height stays within [0, container-topInset].
func (t *Tracker) Update(deltaY float64) Sample {
	g := t.calc.Geometry
	top := g.SafeArea.Top
	bottom := g.Container.H

	y := t.frame.Y + deltaY
	y = math.Max(top, math.Min(bottom, y))

	t.frame.Y = y
	t.frame.H = math.Min(math.Max(0, bottom-y), t.calc.MaxHeight())

	p := t.Progress(t.frame)
	return Sample{
		Frame:    t.frame,
		Progress: p,
		Alpha:    t.DragAlpha(p),
	}
}

// End finishes the gesture with the release velocity
func (t *Tracker) End(velocity float64) Release {
	t.active = false
	return Release{
		Frame:    t.frame,
		Height:   t.frame.H,
		Progress: t.Progress(t.frame),
		Velocity: velocity,
	}
}

// Progress maps a frame to 0 (fully dismissed) .. 1 (top edge at the safe-area inset)
func (t *Tracker) Progress(frame layout.Rect) float64 {
	g := t.calc.Geometry
	span := g.Container.H - g.SafeArea.Top
	if span <= 0 {
		return 0
	}
	return 1 - (frame.Y-g.SafeArea.Top)/span
}

// DragAlpha is the piecewise-linear overlay opacity while dragging
func (t *Tracker) DragAlpha(progress float64) float64 {
	threshold := 0.0
	switch t.largestUndimmed.Kind() {
	case detent.KindNone:
	case detent.KindMedium:
		threshold = 0.5
	case detent.KindLarge:
		return 0
	case detent.KindConstant:
		span := t.calc.MaxHeight()
		if span <= 0 {
			return 0
		}
		threshold = t.calc.Height(t.largestUndimmed) / span
		if threshold >= 1 {
			return 0
		}
	}
	return clamp01((progress - threshold) / 0.5)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
