package audio

import (
	"math"
	"testing"

	"github.com/linuxmatters/jivescope/internal/config"
)

// fakeProvider simulates a device: it fills windows with a fixed sine
// until closed and counts lifecycle calls.
type fakeProvider struct {
	ready     bool
	amplitude float64
	fills     int
	closed    int
}

func (f *fakeProvider) Fill(dst []float64) bool {
	f.fills++
	if !f.ready {
		return false
	}
	for i := range dst {
		dst[i] = f.amplitude * math.Sin(2*math.Pi*4*float64(i)/float64(len(dst)))
	}
	return true
}

func (f *fakeProvider) Close() error {
	f.closed++
	return nil
}

// TestSource_ZeroStateBeforeAudioArrives verifies the render loop never
// waits on audio: before the provider has a full window, the source
// reports an empty spectrum and zero loudness.
func TestSource_ZeroStateBeforeAudioArrives(t *testing.T) {
	provider := &fakeProvider{ready: false}
	s := NewSourceFromProvider(provider, nil)

	s.Tick()

	if got := s.Spectrum(); got != nil {
		t.Errorf("Spectrum() = %v before audio, want nil", got)
	}
	if got := s.Loudness(); got != 0 {
		t.Errorf("Loudness() = %v before audio, want 0", got)
	}
	if s.State() != StateActive {
		t.Errorf("state = %v, want active", s.State())
	}
}

// TestSource_TickPublishes verifies a tick with audio available produces
// a frame and a nonzero loudness.
func TestSource_TickPublishes(t *testing.T) {
	provider := &fakeProvider{ready: true, amplitude: 0.8}
	s := NewSourceFromProvider(provider, nil)

	s.Tick()

	if got := s.Spectrum(); len(got) != config.NumBins {
		t.Fatalf("spectrum length = %d, want %d", len(got), config.NumBins)
	}
	if got := s.Loudness(); got <= 0 || got > 1 {
		t.Errorf("Loudness() = %v, want in (0,1]", got)
	}
}

// TestSource_TeardownStopsPublication verifies the teardown contract:
// after Close, simulated audio updates must not mutate the published
// spectrum, and the provider is released exactly once.
func TestSource_TeardownStopsPublication(t *testing.T) {
	provider := &fakeProvider{ready: true, amplitude: 0.8}
	s := NewSourceFromProvider(provider, nil)

	s.Tick()
	before := s.Spectrum()
	snapshot := make([]byte, len(before))
	copy(snapshot, before)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if s.State() != StateClosed {
		t.Fatalf("state after close = %v, want closed", s.State())
	}

	// Simulated update callbacks after teardown
	provider.amplitude = 0.1
	fillsBefore := provider.fills
	for i := 0; i < 10; i++ {
		s.Tick()
	}

	if provider.fills != fillsBefore {
		t.Errorf("provider polled %d times after close", provider.fills-fillsBefore)
	}
	after := s.Spectrum()
	if len(after) != len(snapshot) {
		t.Fatalf("spectrum length changed after close: %d → %d", len(snapshot), len(after))
	}
	for i := range after {
		if after[i] != snapshot[i] {
			t.Fatalf("spectrum changed after teardown at bin %d: %d → %d", i, snapshot[i], after[i])
		}
	}

	if provider.closed != 1 {
		t.Errorf("provider closed %d times, want 1", provider.closed)
	}

	// Closing again is a no-op
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if provider.closed != 1 {
		t.Errorf("second Close released provider again (%d closes)", provider.closed)
	}
}

// TestState_String covers the lifecycle state labels used in the TUI.
func TestState_String(t *testing.T) {
	testCases := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateRequesting, "requesting"},
		{StateActive, "active"},
		{StateUnavailable, "unavailable"},
		{StateClosed, "closed"},
		{State(99), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}
