package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Capture owns the microphone stream. The portaudio callback writes
// samples into a ring on the audio thread; the render tick pulls the most
// recent analysis window out. The ring holds several windows so a slow
// tick never reads a partially overwritten region.
type Capture struct {
	stream *portaudio.Stream

	mu      sync.Mutex
	ring    []float64
	head    int
	written int64
}

// NewCapture initializes portaudio and opens an input device. An empty
// deviceName selects the default input; otherwise the first input device
// whose name contains deviceName is used. The stream is opened but not
// started; call Start before reading.
func NewCapture(deviceName string) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	c := &Capture{
		ring: make([]float64, config.FFTSize*8),
	}

	var stream *portaudio.Stream
	var err error
	if deviceName == "" {
		stream, err = portaudio.OpenDefaultStream(1, 0, config.SampleRate, config.FFTSize, c.onSamples)
	} else {
		var dev *portaudio.DeviceInfo
		dev, err = findInputDevice(deviceName)
		if err != nil {
			portaudio.Terminate()
			return nil, err
		}
		params := portaudio.LowLatencyParameters(dev, nil)
		params.Input.Channels = 1
		params.SampleRate = config.SampleRate
		params.FramesPerBuffer = config.FFTSize
		stream, err = portaudio.OpenStream(params, c.onSamples)
	}
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening input stream: %w", err)
	}
	c.stream = stream

	return c, nil
}

// findInputDevice matches an input device by case-insensitive substring.
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing audio devices: %w", err)
	}
	needle := strings.ToLower(name)
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 && strings.Contains(strings.ToLower(dev.Name), needle) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no input device matching %q", name)
}

// Start begins capturing from the device.
func (c *Capture) Start() error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("starting input stream: %w", err)
	}
	return nil
}

// onSamples is the portaudio callback. It must not block.
func (c *Capture) onSamples(in []float32) {
	c.mu.Lock()
	for _, s := range in {
		c.ring[c.head] = float64(s)
		c.head = (c.head + 1) % len(c.ring)
	}
	c.written += int64(len(in))
	c.mu.Unlock()
}

// Fill copies the most recent len(dst) samples into dst, newest last.
// Returns false until enough audio has arrived to fill the window.
func (c *Capture) Fill(dst []float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written < int64(len(dst)) {
		return false
	}

	start := c.head - len(dst)
	if start < 0 {
		start += len(c.ring)
	}
	for i := range dst {
		dst[i] = c.ring[(start+i)%len(c.ring)]
	}
	return true
}

// Close stops the stream and releases the device. After Close returns no
// further callbacks fire and the microphone handle is released.
func (c *Capture) Close() error {
	var firstErr error
	if c.stream != nil {
		if err := c.stream.Stop(); err != nil {
			firstErr = err
		}
		if err := c.stream.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.stream = nil
	}
	if err := portaudio.Terminate(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
