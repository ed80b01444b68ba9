// Package transition owns the interactive lifecycle of a bottom sheet:
// presentation, drag tracking, detent resolution on release, spring settling
// and dismissal.
//
// A Controller is not safe for concurrent use. Every method, including the
// callbacks an Animator makes, must run on the host's single event loop.
package transition

import (
	"log/slog"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/gesture"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/policy"
	"sheetgrip/internal/spring"
)

// Host is the presenter that owns the container
type Host interface {
	// Geometry reports container bounds and safe-area insets; ok is false
	// when the container is not laid out yet.
	Geometry() (g layout.Geometry, ok bool)
	// Apply writes the sheet frame and dimming overlay opacity
	Apply(frame layout.Rect, alpha float64)
}

// Animation describes one spring-driven move of the sheet
type Animation struct {
	Target    Target
	From      layout.Rect
	To        layout.Rect
	FromAlpha float64
	ToAlpha   float64
	Spring    spring.Params
}

// Animator drives animations over time. Run must call step for every
// intermediate state and done exactly once: done(true) at the terminal
// position, done(false) when interrupted.
type Animator interface {
	Run(a Animation, step func(frame layout.Rect, alpha float64), done func(finished bool))
	// Interrupt stops the running animation at its current position and
	// calls done(false) before returning.
	Interrupt()
	Running() bool
}

// Controller is the sheet state machine
type Controller struct {
	opts     Options
	host     Host
	animator Animator
	delegate Delegate
	logger   *slog.Logger

	calc    *layout.Calculator
	tracker *gesture.Tracker

	state      State
	target     Target
	selected   detent.Detent
	presenting detent.Detent
	presented  bool

	frame    layout.Rect
	alpha    float64
	progress float64

	// set while the controller interrupts its own animation to retarget it
	retargeting bool
}

// New validates opts and creates a controller in the Idle state
func New(opts Options, host Host, animator Animator, delegate Delegate, logger *slog.Logger) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if delegate == nil {
		delegate = BaseDelegate{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	calc := &layout.Calculator{TopMargin: opts.TopMargin}
	return &Controller{
		opts:     opts,
		host:     host,
		animator: animator,
		delegate: delegate,
		logger:   logger.With("component", "sheet"),
		calc:     calc,
		tracker:  gesture.NewTracker(calc, opts.LargestUndimmedDetent),
		state:    Idle,
	}, nil
}

// BeginPresentation reveals the sheet from below the container to its
// initial detent: the selected detent when allowed, otherwise the smallest.
func (c *Controller) BeginPresentation(animated bool) {
	const op = "begin presentation"
	if !c.ready(op) {
		return
	}
	if c.state != Idle || c.presented {
		c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
		return
	}

	initial := c.restingDetent()
	c.presenting = initial
	c.apply(c.calc.OffscreenFrame(initial), 0)
	c.logger.Info("presenting", "detent", initial.String(), "animated", animated)
	c.present(initial, animated)
}

// GestureChanged applies a vertical drag delta 1:1 to the sheet
func (c *Controller) GestureChanged(deltaY float64) {
	const op = "gesture changed"
	if !c.ready(op) {
		return
	}

	switch c.state {
	case Dragging:
	case Idle:
		if !c.presented {
			c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
			return
		}
		c.setState(Dragging)
		c.tracker.Begin(c.frame)
	case Presenting:
		c.stopAnimation()
		c.setState(Dragging)
		c.tracker.Begin(c.frame)
		c.completePresentation()
	default:
		c.reject(op, &StateError{Op: op, State: c.state, To: Dragging})
		return
	}

	s := c.tracker.Update(deltaY)
	c.progress = s.Progress
	c.apply(s.Frame, s.Alpha)
}

// GestureEnded resolves the release into a detent, a refused dismissal or a
// dismissal and starts the matching settle animation.
func (c *Controller) GestureEnded(velocity float64) {
	const op = "gesture ended"
	if !c.ready(op) {
		return
	}
	if c.state != Dragging {
		c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
		return
	}

	release := c.tracker.End(velocity)
	outcome := policy.Resolve(policy.Input{
		CurrentHeight:   release.Height,
		Velocity:        velocity,
		Detents:         c.opts.Detents,
		Selected:        c.selected,
		ContainerHeight: c.calc.Geometry.Container.H,
		ModalLocked:     c.opts.ModalLocked,
		ConfirmDismiss:  c.delegate.ShouldDismiss,
		Height:          c.calc.Height,
	})
	c.logger.Debug("gesture resolved",
		"outcome", outcome.String(),
		"height", release.Height,
		"velocity", velocity,
		"progress", release.Progress,
	)

	switch outcome.Kind {
	case policy.SetDetent:
		c.settle(Target{Kind: TargetDetent, Detent: outcome.Detent}, velocity, true)
	case policy.AttemptDismiss:
		c.delegate.DidAttemptDismiss()
		c.settle(Target{Kind: TargetAttemptDismiss, Detent: c.restingDetent()}, velocity, true)
	case policy.Dismiss:
		c.startDismissal(velocity, true)
	}
}

// GestureCancelled ends the gesture the same way a release does
func (c *Controller) GestureCancelled(velocity float64) {
	c.GestureEnded(velocity)
}

// AnimationCompleted is called by the animator when an animation stops.
// finished is false when it was interrupted. An interrupted presentation
// still commits the detent it was heading to. An interrupted settle leaves
// the sheet where the animation stopped without changing the selected
// detent; the frame and the selection then differ until the next drag,
// relayout or programmatic move.
func (c *Controller) AnimationCompleted(finished bool) {
	const op = "animation completed"
	if c.retargeting {
		return
	}
	if c.state != Presenting && c.state != Settling {
		c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
		return
	}

	if c.state == Presenting {
		c.setState(Idle)
		c.logger.Info("presented", "detent", c.presenting.String(), "finished", finished)
		c.completePresentation()
		return
	}

	switch c.target.Kind {
	case TargetDismiss:
		c.setState(Dismissed)
		c.logger.Info("dismissed")
		c.delegate.DidDismiss()
	case TargetAttemptDismiss:
		c.setState(Idle)
	case TargetDetent:
		c.setState(Idle)
		if !finished {
			c.logger.Debug("settle interrupted", "target", c.target.String(), "y", c.frame.Y)
			return
		}
		previous := c.selected
		c.selected = c.target.Detent
		if previous != c.selected {
			c.logger.Info("detent changed", "from", previous.String(), "to", c.selected.String())
			c.delegate.DidChangeSelectedDetent(c.selected)
		}
	}
}

// SetSelectedDetent moves the sheet to d. It does nothing when d is not
// allowed or is already the selected detent at rest.
func (c *Controller) SetSelectedDetent(d detent.Detent, animated bool) {
	const op = "set selected detent"
	if !c.ready(op) {
		return
	}
	if !detent.Contains(c.opts.Detents, d) {
		c.reject(op, &ConfigError{Field: "detent", Value: d.String(), Err: ErrNotAllowed})
		return
	}

	switch c.state {
	case Idle:
		if !c.presented {
			c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
			return
		}
		if d == c.selected {
			return
		}
	case Presenting:
		if d == c.presenting && animated {
			return
		}
		c.stopAnimation()
		c.presenting = d
		c.present(d, animated)
		return
	case Settling:
		if c.target.Kind == TargetDismiss {
			c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
			return
		}
		if c.target.Kind == TargetDetent && c.target.Detent == d && animated {
			return
		}
		c.stopAnimation()
	default:
		c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
		return
	}

	c.settle(Target{Kind: TargetDetent, Detent: d}, 0, animated)
}

// Dismiss is an external dismissal request. It is not subject to the
// should-dismiss veto or the modal lock, and interrupts any drag or settle.
func (c *Controller) Dismiss(animated bool) {
	const op = "dismiss"
	if !c.ready(op) {
		return
	}

	switch c.state {
	case Idle:
		if !c.presented {
			c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
			return
		}
	case Presenting:
		c.stopAnimation()
		c.presented = true
		c.selected = c.presenting
	case Dragging:
		c.tracker.End(0)
	case Settling:
		if c.target.Kind == TargetDismiss {
			c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
			return
		}
		c.stopAnimation()
	}
	c.startDismissal(0, animated)
}

// TapOutside handles a tap on the container at (x, y). When the overlay is
// interactive (no largest undimmed detent) and the tap misses the sheet, it
// is treated as a user dismissal, subject to the modal lock and the veto.
func (c *Controller) TapOutside(x, y float64) {
	const op = "tap outside"
	if !c.ready(op) {
		return
	}
	if c.state != Idle || !c.presented {
		c.reject(op, &StateError{Op: op, State: c.state, To: c.state})
		return
	}
	if !c.opts.LargestUndimmedDetent.IsZero() || c.frame.Contains(x, y) {
		return
	}

	if c.opts.ModalLocked || !c.delegate.ShouldDismiss() {
		c.logger.Debug("tap dismissal refused")
		c.delegate.DidAttemptDismiss()
		return
	}
	c.startDismissal(0, true)
}

// Relayout re-reads the container geometry after a size change and moves
// the sheet to the frame its target now resolves to.
func (c *Controller) Relayout() {
	const op = "relayout"
	if !c.ready(op) {
		return
	}

	switch c.state {
	case Idle:
		if !c.presented {
			return
		}
		d := c.restingDetent()
		c.apply(c.calc.Frame(d), c.calc.DimmingAlpha(d, c.opts.LargestUndimmedDetent))
	case Presenting:
		c.stopAnimation()
		c.present(c.presenting, true)
	case Settling:
		if c.target.Kind == TargetDismiss {
			return
		}
		target := c.target
		c.stopAnimation()
		c.settle(target, 0, true)
	case Dragging:
		s := c.tracker.Update(0)
		c.progress = s.Progress
		c.apply(s.Frame, s.Alpha)
	}
}

// SetDetents replaces the allowed detents
func (c *Controller) SetDetents(detents []detent.Detent) error {
	next := c.opts
	next.Detents = detents
	// the initial selection only matters before presentation
	next.SelectedDetent = detent.None
	if err := next.Validate(); err != nil {
		return err
	}
	c.opts.Detents = append([]detent.Detent(nil), detents...)

	// move off any detent the new list no longer allows
	switch c.state {
	case Idle:
		if c.presented && !detent.Contains(c.opts.Detents, c.selected) {
			c.settle(Target{Kind: TargetDetent, Detent: c.restingDetent()}, 0, true)
		}
	case Presenting:
		if !detent.Contains(c.opts.Detents, c.presenting) {
			c.stopAnimation()
			c.presenting = c.restingDetent()
			c.present(c.presenting, true)
		}
	case Settling:
		if c.target.Kind != TargetDismiss && !detent.Contains(c.opts.Detents, c.target.Detent) {
			kind := c.target.Kind
			c.stopAnimation()
			c.settle(Target{Kind: kind, Detent: c.restingDetent()}, 0, true)
		}
	}
	return nil
}

// SetLargestUndimmedDetent changes which detents leave the overlay transparent
func (c *Controller) SetLargestUndimmedDetent(d detent.Detent) error {
	if !d.IsZero() && !detent.Contains(c.opts.Detents, d) {
		return &ConfigError{Field: "largest undimmed detent", Value: d.String(), Err: ErrNotAllowed}
	}
	c.opts.LargestUndimmedDetent = d
	c.tracker.SetLargestUndimmed(d)

	if c.state == Idle && c.presented {
		if _, ok := c.geometry(); ok {
			c.apply(c.frame, c.calc.DimmingAlpha(c.restingDetent(), d))
		}
	}
	return nil
}

// SetModalLocked toggles the refusal of user-initiated dismissals
func (c *Controller) SetModalLocked(locked bool) { c.opts.ModalLocked = locked }

// SetPrefersGrabberVisible toggles the grabber
func (c *Controller) SetPrefersGrabberVisible(visible bool) { c.opts.PrefersGrabberVisible = visible }

// SetPreferredCornerRadius sets the corner radius; nil restores the default
func (c *Controller) SetPreferredCornerRadius(r *float64) error {
	if r != nil && *r < 0 {
		return &ConfigError{Field: "corner radius", Err: ErrNotAllowed}
	}
	c.opts.PreferredCornerRadius = r
	return nil
}

// State returns the current lifecycle state
func (c *Controller) State() State { return c.state }

// Target returns the destination of the running animation
func (c *Controller) Target() Target { return c.target }

// SelectedDetent returns the committed detent, None before presentation completes
func (c *Controller) SelectedDetent() detent.Detent { return c.selected }

// Detents returns a copy of the allowed detents
func (c *Controller) Detents() []detent.Detent {
	return append([]detent.Detent(nil), c.opts.Detents...)
}

func (c *Controller) LargestUndimmedDetent() detent.Detent { return c.opts.LargestUndimmedDetent }
func (c *Controller) ModalLocked() bool                    { return c.opts.ModalLocked }
func (c *Controller) PrefersGrabberVisible() bool          { return c.opts.PrefersGrabberVisible }

// CornerRadius returns the preferred radius or DefaultCornerRadius
func (c *Controller) CornerRadius() float64 {
	if c.opts.PreferredCornerRadius != nil {
		return *c.opts.PreferredCornerRadius
	}
	return DefaultCornerRadius
}

// Frame returns the last frame written to the host
func (c *Controller) Frame() layout.Rect { return c.frame }

// Alpha returns the last overlay opacity written to the host
func (c *Controller) Alpha() float64 { return c.alpha }

// Progress returns the sheet position as 0 (dismissed) .. 1 (top of safe area)
func (c *Controller) Progress() float64 {
	if c.state == Dragging {
		return c.progress
	}
	return c.tracker.Progress(c.frame)
}

// Layout exposes the calculator for the current geometry
func (c *Controller) Layout() *layout.Calculator { return c.calc }

func (c *Controller) present(d detent.Detent, animated bool) {
	c.setState(Presenting)
	c.target = Target{Kind: TargetDetent, Detent: d}
	c.run(Animation{
		Target:    c.target,
		From:      c.frame,
		To:        c.calc.Frame(d),
		FromAlpha: c.alpha,
		ToAlpha:   c.calc.DimmingAlpha(d, c.opts.LargestUndimmedDetent),
		Spring:    spring.New(c.opts.Damping, c.opts.PresentationResponse, spring.Vector{}),
	}, animated)
}

// completePresentation commits the presented detent and notifies the
// delegate, whether or not the presentation ran to its end
func (c *Controller) completePresentation() {
	c.presented = true
	c.selected = c.presenting
	c.delegate.DidPresent(c.presenting)
}

func (c *Controller) settle(target Target, velocity float64, animated bool) {
	to := c.calc.Frame(target.Detent)
	v := spring.InitialVelocity(velocity, to.H-c.frame.H)

	c.setState(Settling)
	c.target = target
	c.logger.Debug("settling", "target", target.String(), "velocity", velocity, "animated", animated)
	c.run(Animation{
		Target:    target,
		From:      c.frame,
		To:        to,
		FromAlpha: c.alpha,
		ToAlpha:   c.calc.DimmingAlpha(target.Detent, c.opts.LargestUndimmedDetent),
		Spring:    spring.New(c.opts.Damping, c.opts.SettleResponse, spring.Vector{DX: v, DY: v}),
	}, animated)
}

func (c *Controller) startDismissal(velocity float64, animated bool) {
	to := c.calc.DismissedFrame(c.frame)
	v := spring.InitialVelocity(velocity, c.frame.Y-to.Y)

	c.setState(Settling)
	c.target = Target{Kind: TargetDismiss}
	c.logger.Info("dismissing", "animated", animated)
	c.delegate.WillDismiss()
	c.run(Animation{
		Target:    c.target,
		From:      c.frame,
		To:        to,
		FromAlpha: c.alpha,
		ToAlpha:   0,
		Spring:    spring.New(c.opts.Damping, c.opts.SettleResponse, spring.Vector{DX: v, DY: v}),
	}, animated)
}

func (c *Controller) run(a Animation, animated bool) {
	if !animated || c.animator == nil {
		c.apply(a.To, a.ToAlpha)
		c.AnimationCompleted(true)
		return
	}
	c.animator.Run(a, c.apply, c.AnimationCompleted)
}

// stopAnimation halts the running animation without completion bookkeeping;
// the sheet keeps the interpolated frame the animator last wrote.
func (c *Controller) stopAnimation() {
	if c.animator == nil || !c.animator.Running() {
		return
	}
	c.retargeting = true
	c.animator.Interrupt()
	c.retargeting = false
}

func (c *Controller) apply(frame layout.Rect, alpha float64) {
	c.frame = frame
	c.alpha = alpha
	c.host.Apply(frame, alpha)
}

// restingDetent is the last committed detent, or the smallest allowed
// detent when nothing valid is committed.
func (c *Controller) restingDetent() detent.Detent {
	if !c.selected.IsZero() && detent.Contains(c.opts.Detents, c.selected) {
		return c.selected
	}
	if c.selected.IsZero() && detent.Contains(c.opts.Detents, c.opts.SelectedDetent) {
		return c.opts.SelectedDetent
	}
	return c.calc.Smallest(c.opts.Detents)
}

func (c *Controller) setState(to State) {
	if !CanTransition(c.state, to) {
		// unreachable through the public API; keep the machine consistent anyway
		c.logger.Warn("unexpected transition", "from", c.state.String(), "to", to.String())
	}
	c.state = to
}

// ready refreshes the geometry and reports whether op may proceed
func (c *Controller) ready(op string) bool {
	if c.state == Dismissed {
		c.reject(op, ErrInert)
		return false
	}
	if _, ok := c.geometry(); !ok {
		c.reject(op, ErrGeometryUnavailable)
		return false
	}
	return true
}

func (c *Controller) geometry() (layout.Geometry, bool) {
	if c.host == nil {
		return layout.Geometry{}, false
	}
	g, ok := c.host.Geometry()
	if !ok || !g.Valid() {
		return layout.Geometry{}, false
	}
	c.calc.Geometry = g
	return g, true
}

func (c *Controller) reject(op string, err error) {
	d := Diagnostic{Op: op, State: c.state, Err: err}
	c.logger.Debug("operation ignored", "op", op, "state", c.state.String(), "err", err)
	if c.opts.OnDiagnostic != nil {
		c.opts.OnDiagnostic(d)
	}
}
