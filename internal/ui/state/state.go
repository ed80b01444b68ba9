package state

import "sheetgrip/internal/gesture"

// AppState contains the UI state that lives outside the sheet controller
type AppState struct {
	// Gesture state
	Dragging  bool // a keyboard or mouse gesture is open
	MouseDrag bool // the open gesture follows the mouse
	LastY     int  // last mouse row seen during a drag
	Velocity  *gesture.VelocityTracker

	// Dismissal
	Veto              bool // refuse user dismissals and ask for confirmation
	ConfirmingDismiss bool
	Dismissed         bool

	// UI state
	StatusMessage string
	InPagerMode   bool
	Ticking       bool // a frame tick is scheduled
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Velocity: gesture.NewVelocityTracker(gesture.DefaultVelocityWindow),
	}
}

// BeginDrag opens a gesture
func (s *AppState) BeginDrag(mouse bool) {
	s.Dragging = true
	s.MouseDrag = mouse
	s.Velocity.Reset()
}

// EndDrag closes the open gesture
func (s *AppState) EndDrag() {
	s.Dragging = false
	s.MouseDrag = false
}
