package audio

import (
	"io"

	"github.com/linuxmatters/jivescope/internal/config"
)

// FileProvider drives the analyser from a decoded audio file instead of a
// live device. Each Fill advances playback by one video frame's worth of
// samples and hands back the trailing analysis window, so rendering a
// file is deterministic and runs as fast as the render loop can go.
type FileProvider struct {
	decoder  Decoder
	window   []float64
	perFrame int
	primed   bool
	done     bool
}

// NewFileProvider opens the file with the decoder matching its extension.
func NewFileProvider(path string) (*FileProvider, error) {
	decoder, err := OpenDecoder(path)
	if err != nil {
		return nil, err
	}
	return &FileProvider{
		decoder:  decoder,
		window:   make([]float64, config.FFTSize),
		perFrame: config.SampleRate / config.FPS,
	}, nil
}

// Fill advances one frame and copies the current analysis window into
// dst. At end of file the last window keeps repeating, which decays the
// published spectrum to silence through the analyser's smoothing.
func (p *FileProvider) Fill(dst []float64) bool {
	if !p.primed {
		if !p.read(len(p.window), p.window) {
			return false
		}
		p.primed = true
		copy(dst, p.window)
		return true
	}

	if !p.done {
		p.advance(p.perFrame)
	}
	copy(dst, p.window)
	return true
}

// Exhausted reports whether the underlying file has been fully consumed.
func (p *FileProvider) Exhausted() bool {
	return p.done
}

// advance slides the window forward by n samples, zero-filling past EOF.
func (p *FileProvider) advance(n int) {
	fresh := make([]float64, n)
	got := 0
	for got < n && !p.done {
		chunk, err := p.decoder.ReadChunk(n - got)
		if err == io.EOF || len(chunk) == 0 {
			p.done = true
			break
		}
		if err != nil {
			p.done = true
			break
		}
		copy(fresh[got:], chunk)
		got += len(chunk)
	}

	if n >= len(p.window) {
		copy(p.window, fresh[n-len(p.window):])
		return
	}
	copy(p.window, p.window[n:])
	copy(p.window[len(p.window)-n:], fresh)
}

// read fills buf completely or reports failure.
func (p *FileProvider) read(n int, buf []float64) bool {
	got := 0
	for got < n {
		chunk, err := p.decoder.ReadChunk(n - got)
		if err != nil || len(chunk) == 0 {
			return false
		}
		copy(buf[got:], chunk)
		got += len(chunk)
	}
	return true
}

// Close releases the decoder.
func (p *FileProvider) Close() error {
	return p.decoder.Close()
}
