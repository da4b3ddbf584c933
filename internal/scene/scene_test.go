package scene

import (
	"math"
	"testing"

	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/reactive"
)

// TestScene_SilentQuarterPeriod is the end-to-end silence scenario: one
// object, an all-zero spectrum, elapsed time at a quarter of the base
// period. Loudness is 0, the period stays at BasePeriod, the sine term is
// exactly 1, and the rotation angle advances by SpeedBase*dt.
func TestScene_SilentQuarterPeriod(t *testing.T) {
	s := New(1)
	spectrum := make([]byte, config.NumBins)
	loudness := reactive.Boost(reactive.Average(spectrum))
	if loudness != 0 {
		t.Fatalf("all-zero spectrum gave loudness %v, want 0", loudness)
	}

	elapsed := config.BasePeriod / 4
	dt := 1.0 / config.FPS
	s.Update(elapsed, dt, spectrum, loudness)

	obj := s.Objects[0]
	want := obj.Osc.SpeedBase * dt
	if math.Abs(obj.Osc.Angle-want) > 1e-12 {
		t.Errorf("rotation increment = %v, want SpeedBase*dt = %v", obj.Osc.Angle, want)
	}
	t.Logf("t=%.0fs silent frame: angle += %.6f rad", elapsed, obj.Osc.Angle)
}

// TestScene_ObjectsAreIndependent verifies per-object state never leaks:
// updating the scene moves each smoother towards its own band only.
func TestScene_ObjectsAreIndependent(t *testing.T) {
	s := New(4)

	// Spectrum with energy only in the band of object 0
	spectrum := make([]byte, 64)
	for bin := 0; bin < 16; bin++ {
		spectrum[bin] = 255
	}

	for frame := 0; frame < 200; frame++ {
		s.Update(float64(frame)/config.FPS, 1.0/config.FPS, spectrum, 0.5)
	}

	first := s.Objects[0].Smooth.Scale
	rest := s.Objects[3].Smooth.Scale

	if first <= rest {
		t.Errorf("bass object scale %v not above treble object scale %v", first, rest)
	}
	if math.Abs(rest-1.0) > 1e-6 {
		t.Errorf("object outside the energized band moved to scale %v, want 1.0", rest)
	}
}

// TestScene_EmptySpectrumHoldsSmoothers verifies degraded audio holds
// smoothed state while the ambient sway continues.
func TestScene_EmptySpectrumHoldsSmoothers(t *testing.T) {
	s := New(3)
	spectrum := make([]byte, 64)
	for i := range spectrum {
		spectrum[i] = 180
	}

	for frame := 0; frame < 60; frame++ {
		s.Update(float64(frame)/config.FPS, 1.0/config.FPS, spectrum, 0.7)
	}
	held := s.Objects[1].Smooth.Scale
	angleBefore := s.Objects[1].Osc.Angle

	s.Update(2.0, 1.0/config.FPS, nil, 0)

	if s.Objects[1].Smooth.Scale != held {
		t.Errorf("smoothed scale changed on empty spectrum: %v → %v", held, s.Objects[1].Smooth.Scale)
	}
	if s.Objects[1].Osc.Angle == angleBefore {
		t.Error("oscillator stopped on empty spectrum; ambient sway should continue")
	}
}

// TestNew_Configuration verifies object count, hue spread and the phase
// relationship between opposite objects.
func TestNew_Configuration(t *testing.T) {
	s := New(config.ObjectCount)
	if len(s.Objects) != config.ObjectCount {
		t.Fatalf("object count = %d, want %d", len(s.Objects), config.ObjectCount)
	}

	half := config.ObjectCount / 2
	diff := s.Objects[half].Osc.Phase - s.Objects[0].Osc.Phase
	if math.Abs(diff-math.Pi) > 1e-12 {
		t.Errorf("opposite-object phase difference = %v, want π", diff)
	}

	for i, obj := range s.Objects {
		if obj.Hue < 0 || obj.Hue >= 360 {
			t.Errorf("object %d hue %v outside [0,360)", i, obj.Hue)
		}
	}
}
