package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeDetentPrompt
	ModeConfirmDismiss
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHelp:
		return "help"
	case ModeDetentPrompt:
		return "detent"
	case ModeConfirmDismiss:
		return "confirm"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// Dragging reports whether a keyboard or mouse gesture is open
	Dragging() bool
	// ContainerHeight is the terminal height in rows
	ContainerHeight() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
