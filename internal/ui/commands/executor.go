package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/transition"
	"sheetgrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus, sheet func() *transition.Controller) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State: state,
			Bus:   bus,
			Sheet: sheet,
		},
	}
}

// ExecuteToggleModalLock creates and executes a modal lock toggle
func (e *Executor) ExecuteToggleModalLock() tea.Cmd {
	return NewToggleModalLockCommand(e.ctx).Execute()
}

// ExecuteToggleVeto creates and executes a confirmation toggle
func (e *Executor) ExecuteToggleVeto() tea.Cmd {
	return NewToggleVetoCommand(e.ctx).Execute()
}

// ExecuteToggleGrabber creates and executes a grabber toggle
func (e *Executor) ExecuteToggleGrabber() tea.Cmd {
	return NewToggleGrabberCommand(e.ctx).Execute()
}

// ExecuteToggleUndimmed creates and executes an undimmed detent toggle
func (e *Executor) ExecuteToggleUndimmed() tea.Cmd {
	return NewToggleUndimmedCommand(e.ctx).Execute()
}

// ExecuteSelectDetentText creates and executes a typed detent selection
func (e *Executor) ExecuteSelectDetentText(text string) tea.Cmd {
	return NewSelectDetentTextCommand(e.ctx, text).Execute()
}

// ExecuteSelectConstant creates and executes a constant detent selection
func (e *Executor) ExecuteSelectConstant(animated bool) tea.Cmd {
	return NewSelectConstantCommand(e.ctx, animated).Execute()
}
