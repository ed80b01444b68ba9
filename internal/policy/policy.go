// Package policy decides, at the end of a drag, which discrete state a sheet
// commits to: a detent, a refused dismissal, or a dismissal.
package policy

import (
	"math"
	"sort"

	"sheetgrip/internal/detent"
)

// Kind is the type of decision
type Kind int

const (
	// SetDetent settles at Outcome.Detent
	SetDetent Kind = iota
	// AttemptDismiss refuses the dismissal; the sheet settles back
	AttemptDismiss
	// Dismiss animates the sheet off screen
	Dismiss
)

func (k Kind) String() string {
	switch k {
	case SetDetent:
		return "set-detent"
	case AttemptDismiss:
		return "attempt-dismiss"
	case Dismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Outcome is the decision; Detent is only set for SetDetent
type Outcome struct {
	Kind   Kind
	Detent detent.Detent
}

func (o Outcome) String() string {
	if o.Kind == SetDetent {
		return o.Kind.String() + "(" + o.Detent.String() + ")"
	}
	return o.Kind.String()
}

// Input is everything the decision depends on
type Input struct {
	// CurrentHeight is the sheet height at release
	CurrentHeight float64
	// Velocity is the release velocity; positive is downward (closing)
	Velocity float64
	// Detents are the allowed detents in configuration order
	Detents []detent.Detent
	// Selected is the last committed detent, or None
	Selected        detent.Detent
	ContainerHeight float64
	ModalLocked     bool
	// ConfirmDismiss vetoes a dismissal by returning false; nil allows it
	ConfirmDismiss func() bool
	// Height resolves a detent to its content height
	Height func(detent.Detent) float64
}

// RequiredMinVelocity is the speed below which a release snaps back to the
// committed detent regardless of direction.
func RequiredMinVelocity(containerHeight float64) float64 {
	return containerHeight / 2
}

type ranked struct {
	d detent.Detent
	h float64
}

// Resolve decides the outcome of a released drag
func Resolve(in Input) Outcome {
	sorted := rank(in.Detents, in.Height)
	if len(sorted) == 0 {
		return Outcome{Kind: AttemptDismiss}
	}

	if math.Abs(in.Velocity) < RequiredMinVelocity(in.ContainerHeight) {
		if !in.Selected.IsZero() && detent.Contains(in.Detents, in.Selected) {
			return Outcome{Kind: SetDetent, Detent: in.Selected}
		}
		return Outcome{Kind: SetDetent, Detent: sorted[0].d}
	}

	if in.Velocity > 0 {
		below := -1
		for i, r := range sorted {
			if r.h <= in.CurrentHeight {
				below = i
			}
		}
		if below >= 0 {
			return Outcome{Kind: SetDetent, Detent: sorted[below].d}
		}
		if in.ModalLocked || (in.ConfirmDismiss != nil && !in.ConfirmDismiss()) {
			return Outcome{Kind: AttemptDismiss}
		}
		return Outcome{Kind: Dismiss}
	}

	for _, r := range sorted {
		if r.h >= in.CurrentHeight {
			return Outcome{Kind: SetDetent, Detent: r.d}
		}
	}
	if last := sorted[len(sorted)-1]; in.CurrentHeight > last.h {
		return Outcome{Kind: SetDetent, Detent: last.d}
	}

	return Outcome{Kind: AttemptDismiss}
}

func rank(detents []detent.Detent, height func(detent.Detent) float64) []ranked {
	out := make([]ranked, 0, len(detents))
	for _, d := range detents {
		h := 0.0
		if height != nil {
			h = height(d)
		}
		out = append(out, ranked{d: d, h: h})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].h < out[j].h })
	return out
}
