// Package spring maps design-friendly spring descriptions (damping ratio and
// response time) onto physical mass/stiffness/damping parameters, and
// integrates them with harmonica for animation drivers.
package spring

import "math"

const (
	// DefaultResponse is used when a non-positive response is requested
	DefaultResponse = 0.3

	// PresentationResponse times the initial reveal of a sheet
	PresentationResponse = 0.4
	// SettleResponse times settle, snap-back and dismissal animations
	SettleResponse = 0.3
	// CriticalDamping produces no overshoot
	CriticalDamping = 1.0
)

// Vector is a 2D velocity
type Vector struct {
	DX, DY float64
}

// Params is a physically described spring with unit-normalized initial velocity.
type Params struct {
	Mass            float64
	Stiffness       float64
	Damping         float64
	InitialVelocity Vector
}

// New builds spring parameters from a damping ratio in [0,1] and a response in
// seconds: stiffness (2π/response)², damping 4π·damping/response, mass 1.
func New(damping, response float64, initialVelocity Vector) Params {
	damping = math.Max(0, math.Min(1, damping))
	if response <= 0 || math.IsNaN(response) {
		response = DefaultResponse
	}
	return Params{
		Mass:            1,
		Stiffness:       math.Pow(2*math.Pi/response, 2),
		Damping:         4 * math.Pi * damping / response,
		InitialVelocity: initialVelocity,
	}
}

// FromDuration builds spring parameters from a perceptual duration and bounce.
// bounce 0 is critically damped, positive values overshoot and negative values
// are overdamped.
func FromDuration(duration, bounce float64, initialVelocity Vector) Params {
	if duration <= 0 || math.IsNaN(duration) {
		duration = DefaultResponse
	}
	bounce = math.Max(-0.99, math.Min(1, bounce))

	ratio := 1 - bounce
	if bounce < 0 {
		ratio = 1 / (1 + bounce)
	}
	return Params{
		Mass:            1,
		Stiffness:       math.Pow(2*math.Pi/duration, 2),
		Damping:         4 * math.Pi * ratio / duration,
		InitialVelocity: initialVelocity,
	}
}

// AngularFrequency returns the undamped angular frequency √(k/m)
func (p Params) AngularFrequency() float64 {
	if p.Mass <= 0 {
		return 0
	}
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio returns c / (2√(km))
func (p Params) DampingRatio() float64 {
	denom := 2 * math.Sqrt(p.Stiffness*p.Mass)
	if denom == 0 {
		return 0
	}
	return p.Damping / denom
}

// CriticallyDamped reports whether the spring settles without overshoot at the
// fastest possible rate.
func (p Params) CriticallyDamped() bool {
	return math.Abs(p.DampingRatio()-1) < 1e-9
}

// InitialVelocity converts a release velocity into the normalized
// rate-of-approach an animation expects: -releaseVelocity/remainingDistance.
// remainingDistance is the signed height still to travel, so a release moving
// toward the target yields a positive rate.
func InitialVelocity(releaseVelocity, remainingDistance float64) float64 {
	if remainingDistance == 0 || math.IsNaN(remainingDistance) {
		return 0
	}
	return -releaseVelocity / remainingDistance
}
