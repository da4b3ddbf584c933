package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numChans    int
	pending     []float64 // samples decoded beyond the last chunk boundary
}

// NewFLACDecoder creates a new FLAC decoder. Format information comes
// from the StreamInfo block.
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	return &FLACDecoder{
		stream:     stream,
		file:       f,
		sampleRate: int(stream.Info.SampleRate),
		numChans:   int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads the next chunk of samples, averaging channels to mono.
// FLAC frames rarely align with chunk boundaries; the overrun carries
// over into the next call.
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float64, error) {
	samples := make([]float64, 0, numSamples)

	if len(d.pending) > 0 {
		take := len(d.pending)
		if take > numSamples {
			take = numSamples
		}
		samples = append(samples, d.pending[:take]...)
		d.pending = d.pending[take:]
	}

	for len(samples) < numSamples {
		frame, err := d.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				if len(samples) == 0 {
					return nil, io.EOF
				}
				return samples, nil
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		maxVal := float64(int64(1) << (frame.BitsPerSample - 1))
		frameSamples := len(frame.Subframes[0].Samples)

		for i := 0; i < frameSamples; i++ {
			var sum int64
			for _, subframe := range frame.Subframes {
				sum += int64(subframe.Samples[i])
			}
			sample := float64(sum) / float64(len(frame.Subframes)) / maxVal

			if len(samples) < numSamples {
				samples = append(samples, sample)
			} else {
				d.pending = append(d.pending, sample)
			}
		}
	}

	return samples, nil
}

// SampleRate returns the sample rate
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *FLACDecoder) NumChannels() int {
	return d.numChans
}

// Close closes the decoder and releases resources
func (d *FLACDecoder) Close() error {
	var firstErr error
	if d.stream != nil {
		firstErr = d.stream.Close()
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
