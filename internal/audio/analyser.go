package audio

import (
	"math"
	"sync/atomic"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Analyser converts raw sample windows into the published byte spectrum.
// It applies temporal smoothing to the linear magnitudes, maps them onto
// the configured decibel range as unsigned bytes, and publishes each
// finished frame by atomically replacing the whole slice. Consumers only
// ever see complete frames; published frames are never mutated again.
type Analyser struct {
	proc     *Processor
	mags     []float64 // scratch for the current transform
	smoothed []float64 // temporally smoothed linear magnitudes

	frame   atomic.Pointer[[]byte]
	average atomic.Uint64 // float64 bits of the mean byte magnitude
}

// NewAnalyser creates an analyser for the configured transform size.
func NewAnalyser() *Analyser {
	return &Analyser{
		proc:     NewProcessor(),
		mags:     make([]float64, config.NumBins),
		smoothed: make([]float64, config.NumBins),
	}
}

// Process analyses one window of samples and publishes the resulting
// spectrum frame. Single producer: the render tick.
func (a *Analyser) Process(samples []float64) {
	a.proc.Magnitudes(samples, a.mags)

	frame := make([]byte, config.NumBins)
	var sum float64
	for bin := range a.smoothed {
		// AnalyserNode-style smoothing over time, on linear magnitudes
		a.smoothed[bin] = config.TemporalSmoothing*a.smoothed[bin] +
			(1-config.TemporalSmoothing)*a.mags[bin]

		frame[bin] = magnitudeToByte(a.smoothed[bin])
		sum += float64(frame[bin])
	}

	a.frame.Store(&frame)
	a.average.Store(math.Float64bits(sum / float64(config.NumBins)))
}

// Spectrum returns the most recently published frame, or nil before the
// first analysis completes. The returned slice is immutable.
func (a *Analyser) Spectrum() []byte {
	p := a.frame.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Average returns the mean byte magnitude of the current frame (0-255).
func (a *Analyser) Average() float64 {
	return math.Float64frombits(a.average.Load())
}

// magnitudeToByte maps a linear magnitude onto the 0-255 scale across the
// configured decibel range, clamping at both ends.
func magnitudeToByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	scaled := 255 * (db - config.MinDecibels) / (config.MaxDecibels - config.MinDecibels)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return byte(scaled)
}
