package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultFPS is the integration rate used when none is configured
	DefaultFPS = 60

	restEpsilon = 1e-3
	// maxSeconds bounds undamped springs, which never reach rest on their own
	maxSeconds = 10
)

// Motion integrates the normalized fraction of an animation from 0 to 1.
type Motion struct {
	spring   harmonica.Spring
	fraction float64
	velocity float64
	steps    int
	maxSteps int
	done     bool
}

// Motion starts a new integration of p at the given frame rate
func (p Params) Motion(fps int) *Motion {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Motion{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), p.AngularFrequency(), p.DampingRatio()),
		velocity: p.InitialVelocity.DY,
		maxSteps: fps * maxSeconds,
	}
}

// Step advances one frame and returns the new fraction and whether the
// motion has come to rest. A rested motion stays at exactly 1.
func (m *Motion) Step() (float64, bool) {
	if m.done {
		return m.fraction, true
	}
	m.fraction, m.velocity = m.spring.Update(m.fraction, m.velocity, 1)
	m.steps++

	if (math.Abs(1-m.fraction) < restEpsilon && math.Abs(m.velocity) < restEpsilon) || m.steps >= m.maxSteps {
		m.fraction, m.velocity, m.done = 1, 0, true
	}
	return m.fraction, m.done
}

// Finish jumps straight to rest
func (m *Motion) Finish() {
	m.fraction, m.velocity, m.done = 1, 0, true
}

// Fraction returns the current position in [0,1] (springs with overshoot may
// leave that range transiently).
func (m *Motion) Fraction() float64 { return m.fraction }

// Done reports whether the motion has reached rest
func (m *Motion) Done() bool { return m.done }

// Lerp interpolates between a and b at fraction t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
