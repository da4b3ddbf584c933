package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decoder is the common surface of the file-input decoders. ReadChunk
// returns up to numSamples mono float64 samples in [-1,1] and io.EOF at
// end of stream.
type Decoder interface {
	ReadChunk(numSamples int) ([]float64, error)
	SampleRate() int
	NumChannels() int
	Close() error
}

// OpenDecoder picks a decoder by file extension.
func OpenDecoder(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(filename))
	}
}
