package transition

import "sheetgrip/internal/detent"

// State is the phase of the sheet's lifecycle
type State int

const (
	Idle State = iota
	Presenting
	Dragging
	Settling
	Dismissed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	case Dismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// TargetKind is what a settle animation is heading toward
type TargetKind int

const (
	TargetDetent TargetKind = iota
	TargetAttemptDismiss
	TargetDismiss
)

func (k TargetKind) String() string {
	switch k {
	case TargetDetent:
		return "detent"
	case TargetAttemptDismiss:
		return "attempt-dismiss"
	case TargetDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Target is the destination of a Presenting or Settling animation. For an
// attempted dismissal Detent is the detent the sheet snaps back to.
type Target struct {
	Kind   TargetKind
	Detent detent.Detent
}

func (t Target) String() string {
	if t.Kind == TargetDismiss {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Detent.String() + ")"
}

// Edge is one allowed state change
type Edge struct {
	From State
	To   State
}

// AllTransitions returns every allowed state change.
// Settling never leads back to Dragging: a new gesture waits for the settle
// to finish.
func AllTransitions() []Edge {
	return []Edge{
		// presentation
		{From: Idle, To: Presenting},
		{From: Presenting, To: Presenting},
		{From: Presenting, To: Idle},
		{From: Presenting, To: Dragging},
		{From: Presenting, To: Settling},

		// interaction
		{From: Idle, To: Dragging},
		{From: Dragging, To: Dragging},
		{From: Dragging, To: Settling},

		// programmatic changes and dismissal requests
		{From: Idle, To: Settling},
		{From: Settling, To: Settling},

		// completion
		{From: Settling, To: Idle},
		{From: Settling, To: Dismissed},
	}
}

var allowedEdges = func() map[Edge]bool {
	m := make(map[Edge]bool)
	for _, e := range AllTransitions() {
		m[e] = true
	}
	return m
}()

// CanTransition reports whether from -> to is an allowed edge
func CanTransition(from, to State) bool {
	return allowedEdges[Edge{From: from, To: to}]
}

// TransitionsFrom returns the states reachable from s in one step
func TransitionsFrom(s State) []State {
	var targets []State
	for _, e := range AllTransitions() {
		if e.From == s {
			targets = append(targets, e.To)
		}
	}
	return targets
}
