package reactive

import "github.com/linuxmatters/jivescope/internal/config"

// Smoother low-passes one object's audio-driven scale and edge thickness.
// Targets jump in discrete steps whenever the spectrum refreshes; the
// one-pole update runs every rendered frame so the visible change stays
// continuous. Updates are convex combinations, so smoothed values converge
// towards their targets without ever overshooting.
type Smoother struct {
	Scale     float64
	Thickness float64
}

// NewSmoother starts an object at rest: unit scale, minimum thickness.
func NewSmoother() Smoother {
	return Smoother{
		Scale:     1.0,
		Thickness: config.MinThickness,
	}
}

// BandIndex maps object i of total onto a bin of a spectrum of length l,
// clamped into range. Low-index objects track bass, high-index treble.
func BandIndex(i, total, l int) int {
	if total < 1 || l < 1 {
		return 0
	}
	bin := int(float64(i) / float64(total) * float64(l))
	if bin < 0 {
		bin = 0
	}
	if bin > l-1 {
		bin = l - 1
	}
	return bin
}

// Update advances the smoothed values towards the target derived from the
// object's frequency band. An empty spectrum (audio not yet initialized,
// or device unavailable) holds the last known state rather than faulting.
func (s *Smoother) Update(spectrum []byte, i, total int) {
	if len(spectrum) == 0 {
		return
	}

	freq := float64(spectrum[BandIndex(i, total, len(spectrum))]) / 255.0

	targetScale := 1 + freq*config.ScaleGain
	targetThickness := config.MinThickness + freq*(config.MaxThickness-config.MinThickness)

	s.Scale += (targetScale - s.Scale) * config.SmoothingAlpha
	s.Thickness += (targetThickness - s.Thickness) * config.SmoothingAlpha
}
