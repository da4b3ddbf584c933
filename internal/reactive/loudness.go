package reactive

import (
	"math"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Boost converts a raw average byte magnitude (0-255) into a perceptually
// boosted reactivity scalar in [0,1]. Gamma below 1 expands the low end so
// quiet ambient sound still produces a visible response, while loud input
// saturates towards 1.0.
//
// Input is clamped before exponentiation: the byte scale should guarantee
// the range upstream, but a stray over-range magnitude must not push the
// scalar past 1.
func Boost(rawAverage float64) float64 {
	normalized := rawAverage / 255.0
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return math.Pow(normalized, config.Gamma)
}

// Average returns the mean of a byte spectrum frame, or 0 for an empty
// frame so uninitialized audio reads as silence.
func Average(spectrum []byte) float64 {
	if len(spectrum) == 0 {
		return 0
	}
	var sum float64
	for _, v := range spectrum {
		sum += float64(v)
	}
	return sum / float64(len(spectrum))
}
