package audio

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/reactive"
)

// State tracks the spectrum source's device lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateRequesting
	StateActive
	StateUnavailable
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRequesting:
		return "requesting"
	case StateActive:
		return "active"
	case StateUnavailable:
		return "unavailable"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SampleProvider hands the source one analysis window per tick. Fill
// returns false when no complete window is available yet.
type SampleProvider interface {
	Fill(dst []float64) bool
	Close() error
}

// Source is the spectrum source driven once per render tick. When the
// device is unavailable it reports zero loudness and an empty spectrum
// indefinitely; audio failure degrades the visuals, never the loop.
type Source struct {
	analyser *Analyser
	provider SampleProvider
	state    atomic.Int32
	window   []float64
	log      *log.Logger
}

// OpenMicrophone acquires an input device, the default one when
// deviceName is empty. Acquisition failure is not fatal: the returned
// source stays in the unavailable state and keeps reporting silence.
func OpenMicrophone(deviceName string, logger *log.Logger) *Source {
	s := &Source{
		analyser: NewAnalyser(),
		window:   make([]float64, config.FFTSize),
		log:      logger,
	}
	s.state.Store(int32(StateRequesting))

	capture, err := NewCapture(deviceName)
	if err != nil {
		s.logf("audio device unavailable, continuing without reactivity: %v", err)
		s.state.Store(int32(StateUnavailable))
		return s
	}
	if err := capture.Start(); err != nil {
		s.logf("audio device failed to start, continuing without reactivity: %v", err)
		capture.Close()
		s.state.Store(int32(StateUnavailable))
		return s
	}

	s.provider = capture
	s.state.Store(int32(StateActive))
	return s
}

// OpenFile drives the source from a decoded audio file instead of the
// microphone. Unlike the microphone path a bad file is a hard error: the
// user explicitly asked for it.
func OpenFile(path string, logger *log.Logger) (*Source, error) {
	provider, err := NewFileProvider(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}

	s := &Source{
		analyser: NewAnalyser(),
		provider: provider,
		window:   make([]float64, config.FFTSize),
		log:      logger,
	}
	s.state.Store(int32(StateActive))
	return s, nil
}

// NewSourceFromProvider wires an arbitrary provider; used by tests and
// any caller that already owns a sample stream.
func NewSourceFromProvider(provider SampleProvider, logger *log.Logger) *Source {
	s := &Source{
		analyser: NewAnalyser(),
		provider: provider,
		window:   make([]float64, config.FFTSize),
		log:      logger,
	}
	s.state.Store(int32(StateActive))
	return s
}

// Tick runs one analysis pass and publishes a fresh spectrum frame. It is
// called once per rendered frame by the render loop and never blocks: if
// the device has not produced a full window yet, the previous frame
// simply stays current.
func (s *Source) Tick() {
	if s.State() != StateActive {
		return
	}
	if !s.provider.Fill(s.window) {
		return
	}
	s.analyser.Process(s.window)
}

// Spectrum returns the current frame. Nil until audio has initialized,
// which downstream consumers treat as "hold state, read silence".
func (s *Source) Spectrum() []byte {
	return s.analyser.Spectrum()
}

// Loudness returns the perceptually boosted reactivity scalar in [0,1],
// derived purely from the current spectrum frame.
func (s *Source) Loudness() float64 {
	return reactive.Boost(s.analyser.Average())
}

// Exhausted reports whether a file-backed source has played out. Live
// sources never exhaust.
func (s *Source) Exhausted() bool {
	type exhauster interface{ Exhausted() bool }
	if e, ok := s.provider.(exhauster); ok {
		return e.Exhausted()
	}
	return false
}

// State returns the current lifecycle state.
func (s *Source) State() State {
	return State(s.state.Load())
}

// Close releases the device and stops all analysis. The state flips to
// closed before the provider is torn down, so a tick racing with close
// can at worst republish the existing frame, never a new one afterwards.
func (s *Source) Close() error {
	prev := State(s.state.Swap(int32(StateClosed)))
	if prev == StateClosed {
		return nil
	}
	if s.provider == nil {
		return nil
	}
	if err := s.provider.Close(); err != nil {
		return fmt.Errorf("closing sample provider: %w", err)
	}
	return nil
}

func (s *Source) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
