package types

import "sheetgrip/internal/detent"

// Sheet lifecycle actions
type PresentAction struct{}

func (a PresentAction) Type() string { return "present" }

type SelectDetentAction struct {
	Detent   detent.Detent
	Animated bool
}

func (a SelectDetentAction) Type() string { return "select_detent" }

// SelectConstantAction selects the first configured constant detent
type SelectConstantAction struct {
	Animated bool
}

func (a SelectConstantAction) Type() string { return "select_constant" }

// DismissAction is a programmatic dismissal, not subject to the modal lock
type DismissAction struct {
	Animated bool
}

func (a DismissAction) Type() string { return "dismiss" }

// TapOutsideAction simulates a tap on the dimmed background
type TapOutsideAction struct{}

func (a TapOutsideAction) Type() string { return "tap_outside" }

// Gesture actions
type DragAction struct {
	Rows float64 // positive is downward
}

func (a DragAction) Type() string { return "drag" }

type ReleaseAction struct {
	Velocity float64 // rows per second, positive is downward
}

func (a ReleaseAction) Type() string { return "release" }

// Toggles
type ToggleModalLockAction struct{}

func (a ToggleModalLockAction) Type() string { return "toggle_modal_lock" }

type ToggleVetoAction struct{}

func (a ToggleVetoAction) Type() string { return "toggle_veto" }

type ToggleGrabberAction struct{}

func (a ToggleGrabberAction) Type() string { return "toggle_grabber" }

type ToggleUndimmedAction struct{}

func (a ToggleUndimmedAction) Type() string { return "toggle_undimmed" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Other actions
type ShowJournalAction struct{}

func (a ShowJournalAction) Type() string { return "show_journal" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
