package transition

import (
	"fmt"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/spring"
)

// DefaultCornerRadius applies when no preferred corner radius is configured
const DefaultCornerRadius = 8.0

// Options configures a sheet. It is read once by New and can be changed later
// through the controller's setters.
type Options struct {
	// Detents the sheet may rest at; must not be empty
	Detents []detent.Detent
	// SelectedDetent is the detent to present at; None selects the smallest
	SelectedDetent detent.Detent
	// LargestUndimmedDetent keeps the overlay transparent at and below it; None dims every detent
	LargestUndimmedDetent detent.Detent
	PrefersGrabberVisible bool
	// PreferredCornerRadius is nil for the default radius
	PreferredCornerRadius *float64
	// ModalLocked refuses every user-initiated dismissal
	ModalLocked bool

	// TopMargin is the gap above the large detent; 0 uses layout.DefaultTopMargin
	TopMargin float64
	// Damping is the spring damping ratio; 0 uses critical damping
	Damping              float64
	PresentationResponse float64
	SettleResponse       float64

	// OnDiagnostic observes ignored operations
	OnDiagnostic func(Diagnostic)
}

// SystemOptions mirrors the platform default: a single large detent
func SystemOptions() Options {
	return Options{Detents: []detent.Detent{detent.Large()}}
}

// Validate reports configuration errors
func (o Options) Validate() error {
	if err := detent.ValidateList(o.Detents); err != nil {
		return &ConfigError{Field: "detents", Err: err}
	}
	if !o.SelectedDetent.IsZero() && !detent.Contains(o.Detents, o.SelectedDetent) {
		return &ConfigError{Field: "selected detent", Value: o.SelectedDetent.String(), Err: ErrNotAllowed}
	}
	if !o.LargestUndimmedDetent.IsZero() && !detent.Contains(o.Detents, o.LargestUndimmedDetent) {
		return &ConfigError{Field: "largest undimmed detent", Value: o.LargestUndimmedDetent.String(), Err: ErrNotAllowed}
	}
	if o.PreferredCornerRadius != nil && *o.PreferredCornerRadius < 0 {
		return &ConfigError{Field: "corner radius", Value: fmt.Sprint(*o.PreferredCornerRadius), Err: fmt.Errorf("must not be negative")}
	}
	if o.TopMargin < 0 {
		return &ConfigError{Field: "top margin", Value: fmt.Sprint(o.TopMargin), Err: fmt.Errorf("must not be negative")}
	}
	if o.Damping < 0 || o.Damping > 1 {
		return &ConfigError{Field: "damping", Value: fmt.Sprint(o.Damping), Err: fmt.Errorf("must be within [0,1]")}
	}
	if o.PresentationResponse < 0 || o.SettleResponse < 0 {
		return &ConfigError{Field: "spring response", Err: fmt.Errorf("must not be negative")}
	}
	return nil
}

func (o Options) withDefaults() Options {
	o.Detents = append([]detent.Detent(nil), o.Detents...)
	if o.TopMargin == 0 {
		o.TopMargin = layout.DefaultTopMargin
	}
	if o.Damping == 0 {
		o.Damping = spring.CriticalDamping
	}
	if o.PresentationResponse == 0 {
		o.PresentationResponse = spring.PresentationResponse
	}
	if o.SettleResponse == 0 {
		o.SettleResponse = spring.SettleResponse
	}
	return o
}
