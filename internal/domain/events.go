package domain

import "sheetgrip/internal/detent"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSheetPresented   EventType = "SheetPresented"
	EventDetentChanged    EventType = "DetentChanged"
	EventDismissAttempted EventType = "DismissAttempted"
	EventSheetWillDismiss EventType = "SheetWillDismiss"
	EventSheetDismissed   EventType = "SheetDismissed"
	EventDiagnostic       EventType = "Diagnostic"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SheetPresentedEvent is emitted once the initial presentation has finished
type SheetPresentedEvent struct {
	Detent detent.Detent
}

func (e SheetPresentedEvent) Type() EventType { return EventSheetPresented }

// DetentChangedEvent is emitted when a different detent is committed
type DetentChangedEvent struct {
	Detent detent.Detent
}

func (e DetentChangedEvent) Type() EventType { return EventDetentChanged }

// DismissAttemptedEvent is emitted when a user dismissal was refused
type DismissAttemptedEvent struct{}

func (e DismissAttemptedEvent) Type() EventType { return EventDismissAttempted }

// SheetWillDismissEvent is emitted before the dismissal animation starts
type SheetWillDismissEvent struct{}

func (e SheetWillDismissEvent) Type() EventType { return EventSheetWillDismiss }

// SheetDismissedEvent is emitted once the sheet has left the screen
type SheetDismissedEvent struct{}

func (e SheetDismissedEvent) Type() EventType { return EventSheetDismissed }

// DiagnosticEvent is emitted when the sheet ignored an operation
type DiagnosticEvent struct {
	Op    string
	State string
	Err   error
}

func (e DiagnosticEvent) Type() EventType { return EventDiagnostic }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
