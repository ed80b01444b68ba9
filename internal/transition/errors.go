package transition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is reported when an operation arrives in a state that cannot accept it
	ErrInvalidState = errors.New("operation not valid in current state")
	// ErrGeometryUnavailable is reported when the host cannot provide container bounds
	ErrGeometryUnavailable = errors.New("container geometry unavailable")
	// ErrNotAllowed is reported when a detent is not among the allowed detents
	ErrNotAllowed = errors.New("detent is not allowed")
	// ErrInert is reported for any operation after the sheet was dismissed
	ErrInert = errors.New("sheet is dismissed")
)

// ConfigError is a configuration problem detected before presentation
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// StateError describes an operation rejected by the state machine
type StateError struct {
	Op    string
	State State
	To    State
}

func (e *StateError) Error() string {
	if e.To != e.State {
		return fmt.Sprintf("cannot %s: %s -> %s is not allowed", e.Op, e.State, e.To)
	}
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// Diagnostic records an ignored operation. It is never fatal.
type Diagnostic struct {
	Op    string
	State State
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s ignored in %s: %v", d.Op, d.State, d.Err)
}
