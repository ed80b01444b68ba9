package transition

import "sheetgrip/internal/detent"

// Delegate receives sheet lifecycle notifications. Embed BaseDelegate to
// implement only the hooks you care about, or use Hooks.
type Delegate interface {
	// DidPresent fires once the initial presentation has finished
	DidPresent(d detent.Detent)
	// DidChangeSelectedDetent fires after a gesture or programmatic change
	// commits a different detent. It never fires for the initial presentation.
	DidChangeSelectedDetent(d detent.Detent)
	// ShouldDismiss is asked before a dismissal that the user initiated
	ShouldDismiss() bool
	// DidAttemptDismiss fires when a dismissal was refused
	DidAttemptDismiss()
	WillDismiss()
	DidDismiss()
}

// BaseDelegate implements every hook as a no-op and allows dismissal
type BaseDelegate struct{}

func (BaseDelegate) DidPresent(detent.Detent)              {}
func (BaseDelegate) DidChangeSelectedDetent(detent.Detent) {}
func (BaseDelegate) ShouldDismiss() bool                   { return true }
func (BaseDelegate) DidAttemptDismiss()                    {}
func (BaseDelegate) WillDismiss()                          {}
func (BaseDelegate) DidDismiss()                           {}

// Hooks is a Delegate assembled from optional functions. A nil field is a
// hook the caller does not implement.
type Hooks struct {
	OnPresent        func(detent.Detent)
	OnDetentChange   func(detent.Detent)
	OnShouldDismiss  func() bool
	OnAttemptDismiss func()
	OnWillDismiss    func()
	OnDidDismiss     func()
}

func (h Hooks) DidPresent(d detent.Detent) {
	if h.OnPresent != nil {
		h.OnPresent(d)
	}
}

func (h Hooks) DidChangeSelectedDetent(d detent.Detent) {
	if h.OnDetentChange != nil {
		h.OnDetentChange(d)
	}
}

func (h Hooks) ShouldDismiss() bool {
	if h.OnShouldDismiss != nil {
		return h.OnShouldDismiss()
	}
	return true
}

func (h Hooks) DidAttemptDismiss() {
	if h.OnAttemptDismiss != nil {
		h.OnAttemptDismiss()
	}
}

func (h Hooks) WillDismiss() {
	if h.OnWillDismiss != nil {
		h.OnWillDismiss()
	}
}

func (h Hooks) DidDismiss() {
	if h.OnDidDismiss != nil {
		h.OnDidDismiss()
	}
}
