package reactive

import (
	"math"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Oscillator generates the periodic spin motion for one object. The sway
// term can go negative (reverse spin) but the audio boost only ever pushes
// forward: ambient motion sways, audio excitement accelerates.
type Oscillator struct {
	// Phase offset in radians, fixed at creation from the object index
	Phase float64

	// Base rotation speed in rad/s, strictly increasing with index
	SpeedBase float64

	// Accumulated rotation angle in radians, applied identically to all
	// three rotation axes. Monotonic under silence, never reset.
	Angle float64
}

// NewOscillator creates the oscillator for object i of total. Phases are
// spread evenly over the full circle so the cubes sway out of step.
func NewOscillator(i, total int) Oscillator {
	if total < 1 {
		total = 1
	}
	return Oscillator{
		Phase:     (float64(i) / float64(total)) * 2 * math.Pi,
		SpeedBase: config.RotationSpeedMin + float64(i)*config.RotationSpeedStep,
	}
}

// Period returns the oscillation period in seconds for reactivity r.
// Louder input compresses the period from BasePeriod towards MinPeriod;
// the result is floored at MinPeriod whatever r is, so the frequency
// stays bounded and the division below can never blow up.
func Period(r float64) float64 {
	p := config.BasePeriod - r*(config.BasePeriod-config.MinPeriod)
	if p < config.MinPeriod {
		p = config.MinPeriod
	}
	return p
}

// Update advances the oscillator by dt seconds at elapsed time t with
// reactivity r, and returns the effective rotation speed used.
func (o *Oscillator) Update(t, dt, r float64) float64 {
	oscillation := math.Sin(2*math.Pi*t/Period(r) + o.Phase)
	speed := o.SpeedBase*oscillation + r*o.SpeedBase*config.BoostFactor
	o.Angle += speed * dt
	return speed
}
