package audio

import (
	"math"

	"github.com/linuxmatters/jivescope/internal/config"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// Processor handles FFT analysis for the spectrum source
type Processor struct {
	fft *fourier.FFT
}

// NewProcessor creates a new audio processor sized to the analysis window
func NewProcessor() *Processor {
	return &Processor{
		fft: fourier.NewFFT(config.FFTSize),
	}
}

// Magnitudes performs a windowed FFT on one analysis chunk and writes the
// normalized linear magnitude of each positive-frequency bin into out.
// out must have length config.NumBins. Chunks shorter than the transform
// size are zero padded.
func (p *Processor) Magnitudes(samples []float64, out []float64) {
	chunk := samples
	if len(chunk) < config.FFTSize {
		padded := make([]float64, config.FFTSize)
		copy(padded, chunk)
		chunk = padded
	}

	windowed := ApplyHanning(chunk[:config.FFTSize])
	coeffs := p.fft.Coefficients(nil, windowed)

	// Normalize by transform size so a full-scale input lands in a
	// stable magnitude range regardless of FFTSize
	for bin := 0; bin < len(out) && bin < len(coeffs); bin++ {
		re := real(coeffs[bin])
		im := imag(coeffs[bin])
		out[bin] = math.Sqrt(re*re+im*im) / float64(config.FFTSize)
	}
}
