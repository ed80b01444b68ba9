package eventbus

import (
	"sheetgrip/internal/detent"
	"sheetgrip/internal/transition"
)

// Delegate publishes sheet lifecycle callbacks as domain events
type Delegate struct {
	bus EventBus
	// ShouldDismissFunc vetoes user dismissals; nil allows them
	ShouldDismissFunc func() bool
}

var _ transition.Delegate = (*Delegate)(nil)

// NewDelegate creates a delegate publishing to bus
func NewDelegate(bus EventBus) *Delegate {
	return &Delegate{bus: bus}
}

func (d *Delegate) DidPresent(det detent.Detent) {
	d.bus.Publish(SheetPresentedEvent{Detent: det})
}

func (d *Delegate) DidChangeSelectedDetent(det detent.Detent) {
	d.bus.Publish(DetentChangedEvent{Detent: det})
}

func (d *Delegate) ShouldDismiss() bool {
	if d.ShouldDismissFunc == nil {
		return true
	}
	return d.ShouldDismissFunc()
}

func (d *Delegate) DidAttemptDismiss() { d.bus.Publish(DismissAttemptedEvent{}) }
func (d *Delegate) WillDismiss()       { d.bus.Publish(SheetWillDismissEvent{}) }
func (d *Delegate) DidDismiss()        { d.bus.Publish(SheetDismissedEvent{}) }

// Diagnostic forwards an ignored operation; use it as Options.OnDiagnostic
func (d *Delegate) Diagnostic(diag transition.Diagnostic) {
	d.bus.Publish(DiagnosticEvent{Op: diag.Op, State: diag.State.String(), Err: diag.Err})
}
