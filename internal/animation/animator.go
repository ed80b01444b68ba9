// Package animation drives sheet animations from a frame clock. The host
// calls Advance once per tick on its event loop; nothing here starts
// goroutines or timers.
package animation

import (
	"math"
	"time"

	"sheetgrip/internal/layout"
	"sheetgrip/internal/spring"
	"sheetgrip/internal/transition"
)

// SpringAnimator integrates one transition.Animation at a time with a
// harmonica spring.
type SpringAnimator struct {
	fps     int
	instant bool

	anim   transition.Animation
	motion *spring.Motion
	step   func(layout.Rect, float64)
	done   func(bool)
}

var _ transition.Animator = (*SpringAnimator)(nil)

// New creates an animator ticking at fps frames per second
func New(fps int) *SpringAnimator {
	if fps <= 0 {
		fps = spring.DefaultFPS
	}
	return &SpringAnimator{fps: fps}
}

// SetInstant makes every animation jump to its end state when started
func (a *SpringAnimator) SetInstant(instant bool) { a.instant = instant }

// Interval is the time between two Advance calls
func (a *SpringAnimator) Interval() time.Duration {
	return time.Second / time.Duration(a.fps)
}

// FPS returns the tick rate
func (a *SpringAnimator) FPS() int { return a.fps }

// Run starts anim, interrupting any animation still running
func (a *SpringAnimator) Run(anim transition.Animation, step func(layout.Rect, float64), done func(bool)) {
	a.Interrupt()

	a.anim, a.step, a.done = anim, step, done
	a.motion = anim.Spring.Motion(a.fps)
	if a.instant {
		a.motion.Finish()
		a.complete(true)
	}
}

// Advance moves the running animation forward one frame and reports whether
// it is still running afterwards.
func (a *SpringAnimator) Advance() bool {
	if a.motion == nil {
		return false
	}
	t, rested := a.motion.Step()
	a.step(interpolate(a.anim.From, a.anim.To, t), clamp01(spring.Lerp(a.anim.FromAlpha, a.anim.ToAlpha, t)))
	if rested {
		a.complete(true)
		return false
	}
	return true
}

// Interrupt stops at the current frame and reports the animation unfinished
func (a *SpringAnimator) Interrupt() {
	if a.motion == nil {
		return
	}
	a.complete(false)
}

// Finish jumps the running animation to its end state
func (a *SpringAnimator) Finish() {
	if a.motion == nil {
		return
	}
	a.motion.Finish()
	a.complete(true)
}

// Running reports whether an animation is in flight
func (a *SpringAnimator) Running() bool { return a.motion != nil }

// Target returns the destination of the running animation
func (a *SpringAnimator) Target() (transition.Target, bool) {
	return a.anim.Target, a.motion != nil
}

func (a *SpringAnimator) complete(finished bool) {
	if finished {
		a.step(a.anim.To, a.anim.ToAlpha)
	}
	done := a.done
	a.motion, a.step, a.done = nil, nil, nil
	if done != nil {
		done(finished)
	}
}

func interpolate(from, to layout.Rect, t float64) layout.Rect {
	return layout.Rect{
		X: spring.Lerp(from.X, to.X, t),
		Y: spring.Lerp(from.Y, to.Y, t),
		W: spring.Lerp(from.W, to.W, t),
		H: math.Max(0, spring.Lerp(from.H, to.H, t)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
