// Package encoder streams rendered frames into an external ffmpeg
// process as raw RGB24 video. ffmpeg must be on PATH; the encoder is
// only constructed when an output file was requested.
package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Encoder pipes raw frames to a running ffmpeg process.
type Encoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	rowBuf []byte
	frames int
}

// New starts ffmpeg writing H.264 video to outputPath. When audioPath
// is non-empty the source audio is muxed in and the video is trimmed
// to the shorter stream.
func New(outputPath, audioPath string) (*Encoder, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"-framerate", fmt.Sprintf("%d", config.FPS),
		"-i", "pipe:0",
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
	)
	if audioPath != "" {
		args = append(args, "-c:a", "aac", "-b:a", "192k", "-shortest")
	}
	args = append(args, outputPath)

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating ffmpeg pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}

	return &Encoder{
		cmd:    cmd,
		stdin:  stdin,
		rowBuf: make([]byte, config.Width*3),
	}, nil
}

// WriteFrame sends one frame to ffmpeg. Frames are written row by row,
// dropping the alpha channel; writing from Pix directly avoids the
// bounds checks and color conversion of img.At.
func (e *Encoder) WriteFrame(img *image.RGBA) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	for y := 0; y < height; y++ {
		packRow(e.rowBuf, img.Pix[y*img.Stride:], width)
		if _, err := e.stdin.Write(e.rowBuf[:width*3]); err != nil {
			return fmt.Errorf("writing frame %d: %w", e.frames, err)
		}
	}
	e.frames++
	return nil
}

// Frames returns how many frames have been encoded.
func (e *Encoder) Frames() int {
	return e.frames
}

// Close flushes the stream and waits for ffmpeg to finish the file.
func (e *Encoder) Close() error {
	if err := e.stdin.Close(); err != nil {
		return fmt.Errorf("closing ffmpeg pipe: %w", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// packRow packs one RGBA row into tightly packed RGB24.
func packRow(dst, row []byte, width int) {
	for x := 0; x < width; x++ {
		src := x * 4
		out := x * 3
		dst[out] = row[src]
		dst[out+1] = row[src+1]
		dst[out+2] = row[src+2]
	}
}

// WriteSnapshot saves a single frame as a PNG.
func WriteSnapshot(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
