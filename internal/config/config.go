package config

// Video settings
const (
	Width  = 1280
	Height = 720
	FPS    = 30
)

// Audio settings
const (
	SampleRate = 44100
	FFTSize    = 128 // Short transform keeps analysis latency under 50ms
	NumBins    = FFTSize / 2

	// Temporal smoothing applied by the analyser to linear magnitudes
	// before byte conversion (AnalyserNode-style smoothingTimeConstant)
	TemporalSmoothing = 0.6

	// Decibel range mapped onto the 0-255 byte magnitude scale
	MinDecibels = -100.0
	MaxDecibels = -30.0
)

// Reactivity settings
const (
	ObjectCount = 20 // Number of independently reactive objects

	// Loudness perceptual boost exponent; gamma < 1 lifts quiet input
	Gamma = 0.6

	// Oscillation period range in seconds: full reactivity compresses
	// the sway period from BasePeriod down to MinPeriod
	BasePeriod = 60.0
	MinPeriod  = 15.0

	// Audio contribution to forward spin
	BoostFactor = 2.0

	// Per-object base rotation speed in rad/s, strictly increasing with
	// object index so every cube spins at a visually distinct rate
	RotationSpeedMin  = 0.2
	RotationSpeedStep = 0.05

	// Band-reactive scaling and edge thickness
	ScaleGain    = 0.6
	MinThickness = 0.015
	MaxThickness = 0.06

	// Per-frame convergence rate of the one-pole smoother
	SmoothingAlpha = 0.1
)

// Kaleidoscope settings
const (
	Segments = 12 // Wedge count, must be >= 2
)

// Bloom settings
const (
	BloomThreshold = 180  // Luma above which pixels feed the glow pass
	BloomRadius    = 6    // Blur radius in pixels
	BloomStrength  = 0.65 // Blend weight of the blurred highlights
)

// Scene settings
const (
	CubeSize       = 0.9 // Edge length of each wireframe cube in world units
	CameraDistance = 6.0 // Camera offset along +Z
	FocalLength    = 1.8 // Perspective projection focal length
	RingRadius     = 2.4 // Cubes sit on a ring around the origin
)
