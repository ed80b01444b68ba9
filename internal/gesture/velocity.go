package gesture

import "time"

// DefaultVelocityWindow is how far back samples count toward release velocity
const DefaultVelocityWindow = 100 * time.Millisecond

type sample struct {
	at time.Time
	y  float64
}

// VelocityTracker estimates vertical velocity from timestamped pointer
// positions. Positive velocity points downward.
type VelocityTracker struct {
	window  time.Duration
	samples []sample
}

// NewVelocityTracker creates a tracker; a non-positive window uses the default
func NewVelocityTracker(window time.Duration) *VelocityTracker {
	if window <= 0 {
		window = DefaultVelocityWindow
	}
	return &VelocityTracker{window: window}
}

// Reset drops all samples
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Add records a pointer position
func (v *VelocityTracker) Add(at time.Time, y float64) {
	v.samples = append(v.samples, sample{at: at, y: y})

	cutoff := at.Add(-v.window)
	drop := 0
	for drop < len(v.samples)-2 && v.samples[drop].at.Before(cutoff) {
		drop++
	}
	v.samples = v.samples[drop:]
}

// Velocity returns points per second across the retained window
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	first := v.samples[0]
	last := v.samples[len(v.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.y - first.y) / dt
}
