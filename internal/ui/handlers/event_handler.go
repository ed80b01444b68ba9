package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/ui/state"
)

// ConfirmDismissMsg asks the model to switch into the dismissal confirmation
type ConfirmDismissMsg struct{}

// EventHandler records domain events and updates state
type EventHandler struct {
	state   *state.AppState
	journal *domain.Journal
	// modalLocked reports whether refused dismissals are final
	modalLocked func() bool
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, journal *domain.Journal, modalLocked func() bool) *EventHandler {
	return &EventHandler{
		state:       appState,
		journal:     journal,
		modalLocked: modalLocked,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	if h.journal != nil {
		h.journal.Record(event)
	}

	switch e := event.(type) {
	case eventbus.SheetPresentedEvent:
		h.state.Dismissed = false
		h.state.StatusMessage = "presented at " + e.Detent.String()

	case eventbus.DetentChangedEvent:
		h.state.StatusMessage = "detent " + e.Detent.String()

	case eventbus.DismissAttemptedEvent:
		if h.modalLocked != nil && h.modalLocked() {
			h.state.StatusMessage = "dismissal refused: modal lock"
			return nil
		}
		if h.state.Veto {
			h.state.ConfirmingDismiss = true
			return func() tea.Msg { return ConfirmDismissMsg{} }
		}
		h.state.StatusMessage = "dismissal refused"

	case eventbus.SheetWillDismissEvent:
		h.state.StatusMessage = "dismissing"

	case eventbus.SheetDismissedEvent:
		h.state.Dismissed = true
		h.state.ConfirmingDismiss = false
		h.state.StatusMessage = "dismissed, press p to present again"

	case eventbus.DiagnosticEvent:
		h.state.StatusMessage = fmt.Sprintf("ignored %s", e.Op)

	case eventbus.ErrorEvent:
		h.state.StatusMessage = domain.Describe(e)
	}
	return nil
}
