package transition

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/spring"
)

type fakeHost struct {
	geometry layout.Geometry
	ok       bool
	applied  int
}

func (h *fakeHost) Geometry() (layout.Geometry, bool) { return h.geometry, h.ok }
func (h *fakeHost) Apply(layout.Rect, float64)         { h.applied++ }

type fakeAnimator struct {
	anim    Animation
	step    func(layout.Rect, float64)
	done    func(bool)
	running bool
	runs    int
}

func (a *fakeAnimator) Run(anim Animation, step func(layout.Rect, float64), done func(bool)) {
	a.anim, a.step, a.done = anim, step, done
	a.running = true
	a.runs++
}

func (a *fakeAnimator) Interrupt() {
	if !a.running {
		return
	}
	a.running = false
	a.done(false)
}

func (a *fakeAnimator) Running() bool { return a.running }

// advance moves the running animation to fraction t without finishing it
func (a *fakeAnimator) advance(t float64) {
	f, to := a.anim.From, a.anim.To
	a.step(layout.Rect{
		X: spring.Lerp(f.X, to.X, t),
		Y: spring.Lerp(f.Y, to.Y, t),
		W: spring.Lerp(f.W, to.W, t),
		H: spring.Lerp(f.H, to.H, t),
	}, spring.Lerp(a.anim.FromAlpha, a.anim.ToAlpha, t))
}

func (a *fakeAnimator) finish() {
	a.step(a.anim.To, a.anim.ToAlpha)
	a.running = false
	a.done(true)
}

type recorder struct {
	events  []string
	dismiss bool
	asked   int
}

func (r *recorder) DidPresent(d detent.Detent) { r.events = append(r.events, "present:"+d.String()) }
func (r *recorder) DidChangeSelectedDetent(d detent.Detent) {
	r.events = append(r.events, "change:"+d.String())
}
func (r *recorder) ShouldDismiss() bool { r.asked++; return r.dismiss }
func (r *recorder) DidAttemptDismiss()  { r.events = append(r.events, "attempt") }
func (r *recorder) WillDismiss()        { r.events = append(r.events, "will-dismiss") }
func (r *recorder) DidDismiss()         { r.events = append(r.events, "did-dismiss") }

type harness struct {
	c           *Controller
	host        *fakeHost
	anim        *fakeAnimator
	rec         *recorder
	diagnostics []Diagnostic
}

// container 800 tall with 50pt insets: medium 450, large 740, min velocity 400
func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		host: &fakeHost{
			geometry: layout.Geometry{
				Container: layout.Size{W: 400, H: 800},
				SafeArea:  layout.Insets{Top: 50, Bottom: 50},
			},
			ok: true,
		},
		anim: &fakeAnimator{},
		rec:  &recorder{dismiss: true},
	}
	if opts.Detents == nil {
		opts.Detents = []detent.Detent{detent.Medium(), detent.Large()}
	}
	opts.OnDiagnostic = func(d Diagnostic) { h.diagnostics = append(h.diagnostics, d) }

	c, err := New(opts, h.host, h.anim, h.rec, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	h.c = c
	return h
}

func presented(t *testing.T, opts Options) *harness {
	t.Helper()
	h := newHarness(t, opts)
	h.c.BeginPresentation(true)
	h.anim.finish()
	require.Equal(t, Idle, h.c.State())
	return h
}

func (h *harness) lastDiagnostic() Diagnostic {
	if len(h.diagnostics) == 0 {
		return Diagnostic{}
	}
	return h.diagnostics[len(h.diagnostics)-1]
}

func TestPresentationRevealsFromBelow(t *testing.T) {
	h := newHarness(t, Options{})

	h.c.BeginPresentation(true)
	assert.Equal(t, Presenting, h.c.State())
	assert.Equal(t, 800.0, h.anim.anim.From.Y)
	assert.Equal(t, 0.0, h.anim.anim.FromAlpha)
	assert.Equal(t, layout.Rect{Y: 350, W: 400, H: 450}, h.anim.anim.To)
	assert.True(t, h.c.SelectedDetent().IsZero(), "nothing is committed until presentation completes")

	h.anim.finish()
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
	assert.Equal(t, 1.0, h.c.Alpha())
	assert.Equal(t, []string{"present:medium"}, h.rec.events)
	assert.InDelta(t, 0.6, h.c.Progress(), 1e-9)
}

func TestPresentationUsesSelectedDetent(t *testing.T) {
	h := presented(t, Options{SelectedDetent: detent.Large()})
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
	assert.Equal(t, 740.0, h.c.Frame().H)
}

func TestPresentationTwiceIsIgnored(t *testing.T) {
	h := presented(t, Options{})
	runs := h.anim.runs

	h.c.BeginPresentation(true)
	assert.Equal(t, runs, h.anim.runs)
	assert.ErrorIs(t, h.lastDiagnostic().Err, ErrInvalidState)
}

func TestScenarioSlowReleaseReturnsToSelected(t *testing.T) {
	h := presented(t, Options{})

	h.c.GestureChanged(150)
	assert.Equal(t, Dragging, h.c.State())
	assert.Equal(t, 300.0, h.c.Frame().H)

	h.c.GestureEnded(50)
	assert.Equal(t, Settling, h.c.State())
	assert.Equal(t, Target{Kind: TargetDetent, Detent: detent.Medium()}, h.c.Target())

	h.anim.finish()
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
	assert.Equal(t, []string{"present:medium"}, h.rec.events, "returning to the same detent is not a change")
}

func TestScenarioFastCloseDismisses(t *testing.T) {
	h := presented(t, Options{})

	h.c.GestureChanged(350)
	require.Equal(t, 100.0, h.c.Frame().H)
	h.c.GestureEnded(500)

	assert.Equal(t, Settling, h.c.State())
	assert.Equal(t, TargetDismiss, h.c.Target().Kind)
	assert.Equal(t, 800.0, h.anim.anim.To.Y)
	assert.Equal(t, 0.0, h.anim.anim.ToAlpha)
	assert.Positive(t, h.anim.anim.Spring.InitialVelocity.DY, "release toward the target speeds the spring up")

	h.anim.finish()
	assert.Equal(t, Dismissed, h.c.State())
	assert.Equal(t, []string{"present:medium", "will-dismiss", "did-dismiss"}, h.rec.events)
	assert.Equal(t, 1, h.rec.asked)
}

func TestScenarioVetoedCloseSnapsBack(t *testing.T) {
	h := presented(t, Options{})
	h.rec.dismiss = false

	h.c.GestureChanged(350)
	h.c.GestureEnded(500)

	assert.Equal(t, Target{Kind: TargetAttemptDismiss, Detent: detent.Medium()}, h.c.Target())
	assert.Equal(t, []string{"present:medium", "attempt"}, h.rec.events)

	h.anim.finish()
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, layout.Rect{Y: 350, W: 400, H: 450}, h.c.Frame())
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
}

func TestModalLockRefusesWithoutAsking(t *testing.T) {
	h := presented(t, Options{ModalLocked: true})

	h.c.GestureChanged(350)
	h.c.GestureEnded(500)

	assert.Equal(t, TargetAttemptDismiss, h.c.Target().Kind)
	assert.Zero(t, h.rec.asked)
}

func TestScenarioFastOpenCommitsLarge(t *testing.T) {
	h := presented(t, Options{})

	h.c.GestureChanged(-100)
	require.Equal(t, 550.0, h.c.Frame().H)
	h.c.GestureEnded(-500)

	assert.Equal(t, Target{Kind: TargetDetent, Detent: detent.Large()}, h.c.Target())
	h.anim.finish()
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
	assert.Equal(t, []string{"present:medium", "change:large"}, h.rec.events)
	assert.Equal(t, 60.0, h.c.Frame().Y)
}

func TestDragClampsAtSafeAreaTop(t *testing.T) {
	h := presented(t, Options{})

	h.c.GestureChanged(-5000)
	assert.Equal(t, 50.0, h.c.Frame().Y)
	assert.Equal(t, 750.0, h.c.Frame().H)
	assert.InDelta(t, 1.0, h.c.Progress(), 1e-9)

	h.c.GestureChanged(10000)
	assert.Equal(t, 800.0, h.c.Frame().Y)
	assert.Zero(t, h.c.Frame().H)
	assert.Zero(t, h.c.Progress())
}

func TestDoubleGestureEndIsIgnored(t *testing.T) {
	h := presented(t, Options{})
	h.c.GestureChanged(-100)
	h.c.GestureEnded(-500)
	runs := h.anim.runs

	h.c.GestureEnded(-500)
	assert.Equal(t, runs, h.anim.runs)
	assert.ErrorIs(t, h.lastDiagnostic().Err, ErrInvalidState)
	assert.Equal(t, "gesture ended", h.lastDiagnostic().Op)
}

func TestSettlingRefusesNewDrag(t *testing.T) {
	h := presented(t, Options{})
	h.c.GestureChanged(-100)
	h.c.GestureEnded(-500)
	frame := h.c.Frame()

	h.c.GestureChanged(20)
	assert.Equal(t, Settling, h.c.State())
	assert.Equal(t, frame, h.c.Frame())
	assert.ErrorIs(t, h.lastDiagnostic().Err, ErrInvalidState)
}

func TestSetSelectedDetentRoundTrip(t *testing.T) {
	h := presented(t, Options{SelectedDetent: detent.Large()})
	runs := h.anim.runs

	h.c.SetSelectedDetent(detent.Large(), false)
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, runs, h.anim.runs)
	assert.Equal(t, []string{"present:large"}, h.rec.events)
}

func TestSetSelectedDetentDuringPresentation(t *testing.T) {
	h := newHarness(t, Options{SelectedDetent: detent.Large()})
	h.c.BeginPresentation(true)
	require.True(t, h.anim.Running())

	h.c.SetSelectedDetent(detent.Large(), false)
	assert.Equal(t, Idle, h.c.State())
	assert.False(t, h.anim.Running())
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
	assert.Equal(t, 740.0, h.c.Frame().H)
	assert.Equal(t, []string{"present:large"}, h.rec.events)
}

func TestSetSelectedDetentIsIdempotent(t *testing.T) {
	h := presented(t, Options{})

	h.c.SetSelectedDetent(detent.Large(), true)
	h.anim.finish()
	runs := h.anim.runs

	h.c.SetSelectedDetent(detent.Large(), true)
	h.c.SetSelectedDetent(detent.Large(), true)
	assert.Equal(t, runs, h.anim.runs)
	assert.Equal(t, []string{"present:medium", "change:large"}, h.rec.events)
}

func TestSetSelectedDetentWithoutAnimation(t *testing.T) {
	h := presented(t, Options{})
	runs := h.anim.runs

	h.c.SetSelectedDetent(detent.Large(), false)
	assert.Equal(t, runs, h.anim.runs)
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, 740.0, h.c.Frame().H)
	assert.Equal(t, []string{"present:medium", "change:large"}, h.rec.events)
}

func TestSetSelectedDetentRejectsUnknown(t *testing.T) {
	h := presented(t, Options{})

	h.c.SetSelectedDetent(detent.Constant(200), true)
	assert.Equal(t, Idle, h.c.State())
	assert.ErrorIs(t, h.lastDiagnostic().Err, ErrNotAllowed)
}

func TestSetSelectedDetentRetargetsPresentation(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.BeginPresentation(true)
	h.anim.advance(0.5)

	h.c.SetSelectedDetent(detent.Large(), true)
	assert.Equal(t, Presenting, h.c.State())
	assert.Equal(t, 740.0, h.anim.anim.To.H)
	assert.Empty(t, h.rec.events, "the interrupted presentation does not complete")

	h.anim.finish()
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
	assert.Equal(t, []string{"present:large"}, h.rec.events)
}

func TestInterruptedSettleKeepsSelection(t *testing.T) {
	h := presented(t, Options{})

	h.c.SetSelectedDetent(detent.Large(), true)
	h.anim.advance(0.5)
	mid := h.c.Frame()
	h.anim.Interrupt()

	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
	assert.Equal(t, mid, h.c.Frame())
	assert.Equal(t, []string{"present:medium"}, h.rec.events)

	h.c.Relayout()
	assert.Equal(t, 450.0, h.c.Frame().H, "relayout returns to the selected detent")
	assert.Equal(t, []string{"present:medium"}, h.rec.events)
}

func TestDragDuringPresentationCompletesIt(t *testing.T) {
	tests := []struct {
		name     string
		selected detent.Detent
		want     detent.Detent
	}{
		{"smallest", detent.None, detent.Medium()},
		{"selected large", detent.Large(), detent.Large()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{SelectedDetent: tt.selected})
			h.c.BeginPresentation(true)
			h.anim.advance(0.99)

			h.c.GestureChanged(1)
			assert.Equal(t, Dragging, h.c.State())
			assert.Equal(t, []string{"present:" + tt.want.String()}, h.rec.events)
			assert.Equal(t, tt.want, h.c.SelectedDetent())

			h.c.GestureEnded(0)
			h.anim.finish()
			assert.Equal(t, tt.want, h.c.SelectedDetent())
			assert.Equal(t, []string{"present:" + tt.want.String()}, h.rec.events, "a slow release returns to the presented detent")
		})
	}
}

func TestInterruptedPresentationCommitsDetent(t *testing.T) {
	h := newHarness(t, Options{SelectedDetent: detent.Large()})
	h.c.BeginPresentation(true)
	h.anim.advance(0.5)
	mid := h.c.Frame()

	h.anim.Interrupt()
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
	assert.Equal(t, mid, h.c.Frame())
	assert.Equal(t, []string{"present:large"}, h.rec.events)

	h.c.Relayout()
	assert.Equal(t, 740.0, h.c.Frame().H)
}

func TestDismissDuringPresentationCommitsDetent(t *testing.T) {
	h := newHarness(t, Options{SelectedDetent: detent.Large()})
	h.c.BeginPresentation(true)
	h.anim.advance(0.5)

	h.c.Dismiss(true)
	assert.Equal(t, TargetDismiss, h.c.Target().Kind)
	assert.Equal(t, detent.Large(), h.c.SelectedDetent())
}

func TestProgrammaticDismissIgnoresVeto(t *testing.T) {
	h := presented(t, Options{ModalLocked: true})
	h.rec.dismiss = false

	h.c.Dismiss(true)
	h.anim.finish()

	assert.Equal(t, Dismissed, h.c.State())
	assert.Zero(t, h.rec.asked)
	assert.Equal(t, []string{"present:medium", "will-dismiss", "did-dismiss"}, h.rec.events)
}

func TestDismissInterruptsSettle(t *testing.T) {
	h := presented(t, Options{})
	h.c.SetSelectedDetent(detent.Large(), true)
	h.anim.advance(0.3)

	h.c.Dismiss(false)
	assert.Equal(t, Dismissed, h.c.State())
	assert.Equal(t, []string{"present:medium", "will-dismiss", "did-dismiss"}, h.rec.events)
}

func TestDismissedControllerIsInert(t *testing.T) {
	h := presented(t, Options{})
	h.c.Dismiss(false)
	require.Equal(t, Dismissed, h.c.State())
	runs := h.anim.runs
	frame := h.c.Frame()

	h.c.GestureChanged(-100)
	h.c.SetSelectedDetent(detent.Large(), true)
	h.c.Dismiss(true)
	h.c.BeginPresentation(true)

	assert.Equal(t, Dismissed, h.c.State())
	assert.Equal(t, runs, h.anim.runs)
	assert.Equal(t, frame, h.c.Frame())
	require.Len(t, h.diagnostics, 4)
	for _, d := range h.diagnostics {
		assert.ErrorIs(t, d.Err, ErrInert)
	}
}

func TestGeometryUnavailable(t *testing.T) {
	h := newHarness(t, Options{})
	h.host.ok = false

	h.c.BeginPresentation(true)
	assert.Equal(t, Idle, h.c.State())
	assert.Zero(t, h.anim.runs)
	assert.ErrorIs(t, h.lastDiagnostic().Err, ErrGeometryUnavailable)

	h.host.ok = true
	h.c.BeginPresentation(true)
	assert.Equal(t, Presenting, h.c.State())
}

func TestTapOutside(t *testing.T) {
	t.Run("tap on the sheet is ignored", func(t *testing.T) {
		h := presented(t, Options{})
		h.c.TapOutside(10, 500)
		assert.Equal(t, Idle, h.c.State())
	})

	t.Run("tap on the overlay dismisses", func(t *testing.T) {
		h := presented(t, Options{})
		h.c.TapOutside(10, 100)
		assert.Equal(t, TargetDismiss, h.c.Target().Kind)
		assert.Equal(t, 1, h.rec.asked)
	})

	t.Run("modal lock refuses", func(t *testing.T) {
		h := presented(t, Options{ModalLocked: true})
		h.c.TapOutside(10, 100)
		assert.Equal(t, Idle, h.c.State())
		assert.Equal(t, []string{"present:medium", "attempt"}, h.rec.events)
	})

	t.Run("undimmed overlay passes taps through", func(t *testing.T) {
		h := presented(t, Options{LargestUndimmedDetent: detent.Medium()})
		h.c.TapOutside(10, 100)
		assert.Equal(t, Idle, h.c.State())
		assert.Zero(t, h.rec.asked)
	})
}

func TestLargestUndimmedDetentAlpha(t *testing.T) {
	h := presented(t, Options{LargestUndimmedDetent: detent.Medium()})
	assert.Zero(t, h.c.Alpha())

	h.c.GestureChanged(-75)
	assert.InDelta(t, 0.7, h.c.Progress(), 1e-9)
	assert.InDelta(t, 0.4, h.c.Alpha(), 1e-9, "fades in over the half above the medium threshold")

	h.c.GestureEnded(-500)
	h.anim.finish()
	assert.Equal(t, 1.0, h.c.Alpha())

	require.NoError(t, h.c.SetLargestUndimmedDetent(detent.Large()))
	assert.Zero(t, h.c.Alpha())
	assert.Error(t, h.c.SetLargestUndimmedDetent(detent.Constant(10)))
}

func TestRelayoutFollowsContainer(t *testing.T) {
	h := presented(t, Options{})

	h.host.geometry.Container.H = 600
	h.c.Relayout()
	assert.Equal(t, layout.Rect{Y: 250, W: 400, H: 350}, h.c.Frame())
	assert.Equal(t, Idle, h.c.State())
}

func TestSetDetentsSettlesWhenSelectionRemoved(t *testing.T) {
	h := presented(t, Options{SelectedDetent: detent.Large()})

	require.NoError(t, h.c.SetDetents([]detent.Detent{detent.Constant(200), detent.Medium()}))
	assert.Equal(t, Target{Kind: TargetDetent, Detent: detent.Constant(200)}, h.c.Target())
	h.anim.finish()
	assert.Equal(t, detent.Constant(200), h.c.SelectedDetent())

	assert.Error(t, h.c.SetDetents(nil))
}

func TestSetDetentsRetargetsSettle(t *testing.T) {
	h := presented(t, Options{})
	h.c.SetSelectedDetent(detent.Large(), true)
	h.anim.advance(0.5)

	require.NoError(t, h.c.SetDetents([]detent.Detent{detent.Medium()}))
	assert.Equal(t, Settling, h.c.State())
	assert.Equal(t, Target{Kind: TargetDetent, Detent: detent.Medium()}, h.c.Target())

	h.anim.finish()
	assert.Equal(t, Idle, h.c.State())
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
	assert.Equal(t, 450.0, h.c.Frame().H)
	assert.Equal(t, []string{"present:medium"}, h.rec.events)
}

func TestSetDetentsRetargetsPresentation(t *testing.T) {
	h := newHarness(t, Options{SelectedDetent: detent.Large()})
	h.c.BeginPresentation(true)
	h.anim.advance(0.5)

	require.NoError(t, h.c.SetDetents([]detent.Detent{detent.Medium()}))
	assert.Equal(t, Presenting, h.c.State())
	assert.Equal(t, 450.0, h.anim.anim.To.H)
	assert.Empty(t, h.rec.events)

	h.anim.finish()
	assert.Equal(t, detent.Medium(), h.c.SelectedDetent())
	assert.Equal(t, []string{"present:medium"}, h.rec.events)
}

func TestSetDetentsKeepsAllowedSettle(t *testing.T) {
	h := presented(t, Options{})
	h.c.SetSelectedDetent(detent.Large(), true)
	runs := h.anim.runs

	require.NoError(t, h.c.SetDetents([]detent.Detent{detent.Medium(), detent.Large(), detent.Constant(200)}))
	assert.Equal(t, runs, h.anim.runs)
	assert.Equal(t, Target{Kind: TargetDetent, Detent: detent.Large()}, h.c.Target())
}

func TestCornerRadius(t *testing.T) {
	h := newHarness(t, Options{})
	assert.Equal(t, DefaultCornerRadius, h.c.CornerRadius())

	r := 16.0
	require.NoError(t, h.c.SetPreferredCornerRadius(&r))
	assert.Equal(t, 16.0, h.c.CornerRadius())

	neg := -1.0
	assert.Error(t, h.c.SetPreferredCornerRadius(&neg))
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"empty detents", Options{}, detent.ErrEmptyDetents},
		{"selected not allowed", Options{Detents: []detent.Detent{detent.Medium()}, SelectedDetent: detent.Large()}, ErrNotAllowed},
		{"undimmed not allowed", Options{Detents: []detent.Detent{detent.Medium()}, LargestUndimmedDetent: detent.Large()}, ErrNotAllowed},
		{"invalid constant", Options{Detents: []detent.Detent{detent.Constant(-1)}}, detent.ErrInvalidHeight},
		{"damping out of range", Options{Detents: []detent.Detent{detent.Large()}, Damping: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts, &fakeHost{}, nil, nil, nil)
			require.Error(t, err)
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestNilAnimatorCompletesSynchronously(t *testing.T) {
	host := &fakeHost{
		geometry: layout.Geometry{Container: layout.Size{W: 80, H: 24}},
		ok:       true,
	}
	c, err := New(SystemOptions(), host, nil, nil, nil)
	require.NoError(t, err)

	c.BeginPresentation(true)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, detent.Large(), c.SelectedDetent())
	assert.Equal(t, 14.0, c.Frame().H)
}

func TestTransitionTable(t *testing.T) {
	assert.False(t, CanTransition(Settling, Dragging))
	assert.False(t, CanTransition(Dismissed, Idle))
	assert.Empty(t, TransitionsFrom(Dismissed))
	assert.ElementsMatch(t, []State{Presenting, Dragging, Settling}, TransitionsFrom(Idle))

	for _, e := range AllTransitions() {
		assert.NotEqual(t, Dismissed, e.From, "dismissed is terminal")
	}
}
