// Package scene owns the per-object reactive state and runs the
// audio-to-visual mapping once per rendered frame.
package scene

import (
	"github.com/linuxmatters/jivescope/internal/reactive"
)

// Object is one reactive cube: its oscillator drives rotation, its
// smoother drives scale and edge thickness, and its placement on the
// ring plus hue are fixed at creation. All state is owned by the render
// tick; objects are never shared across goroutines.
type Object struct {
	Index  int
	Osc    reactive.Oscillator
	Smooth reactive.Smoother
	Hue    float64 // Degrees around the color wheel
}

// Scene holds every reactive object.
type Scene struct {
	Objects []*Object
}

// New creates count objects with evenly spread phases and hues.
func New(count int) *Scene {
	if count < 1 {
		count = 1
	}
	objects := make([]*Object, count)
	for i := range objects {
		objects[i] = &Object{
			Index:  i,
			Osc:    reactive.NewOscillator(i, count),
			Smooth: reactive.NewSmoother(),
			Hue:    float64(i) / float64(count) * 360,
		}
	}
	return &Scene{Objects: objects}
}

// Update advances every object by one frame. The spectrum frame is
// read-only here; loudness is the already-boosted reactivity scalar.
// An empty spectrum leaves the smoothers holding their last state while
// the oscillators keep swaying at their ambient rate.
func (s *Scene) Update(t, dt float64, spectrum []byte, loudness float64) {
	total := len(s.Objects)
	for _, obj := range s.Objects {
		obj.Osc.Update(t, dt, loudness)
		obj.Smooth.Update(spectrum, obj.Index, total)
	}
}
