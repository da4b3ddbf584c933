package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/jivescope/internal/audio"
	"github.com/linuxmatters/jivescope/internal/cli"
	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/encoder"
	"github.com/linuxmatters/jivescope/internal/kaleido"
	"github.com/linuxmatters/jivescope/internal/renderer"
	"github.com/linuxmatters/jivescope/internal/scene"
	"github.com/linuxmatters/jivescope/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Input     string        `arg:"" name:"input" help:"Input audio file (WAV, MP3 or FLAC); omit to use the microphone" optional:""`
	Device    string        `help:"Input device name match; empty uses the default microphone" placeholder:"NAME"`
	Output    string        `help:"Record the session to an MP4 file" placeholder:"FILE"`
	Snapshot  string        `help:"Save the final frame as a PNG" placeholder:"FILE"`
	Duration  time.Duration `help:"Stop after this long (0 = until quit or end of file)" default:"0"`
	Segments  int           `help:"Kaleidoscope segment count" default:"12"`
	Objects   int           `help:"Number of reactive objects" default:"20"`
	Title     string        `help:"Overlay title text"`
	Font      string        `help:"TrueType font file for the overlay title" placeholder:"FILE"`
	NoPreview bool          `help:"Disable the frame preview in the dashboard"`
	Headless  bool          `help:"Run without the terminal dashboard"`
	Version   bool          `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("jivescope"),
		kong.Description("Fold your microphone into a live kaleidoscope of audio-reactive visuals."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Input != "" {
		if _, err := os.Stat(CLI.Input); os.IsNotExist(err) {
			cli.PrintError(fmt.Sprintf("input file does not exist: %s", CLI.Input))
			os.Exit(1)
		}
	}
	if CLI.Segments < 2 {
		cli.PrintWarning(fmt.Sprintf("segment count %d too low, using 2", CLI.Segments))
		CLI.Segments = 2
	}
	if CLI.Objects < 1 {
		cli.PrintError(fmt.Sprintf("invalid object count: %d", CLI.Objects))
		os.Exit(1)
	}
	if CLI.Title != "" && CLI.Font == "" {
		cli.PrintError("--title requires --font")
		os.Exit(1)
	}

	if CLI.Headless {
		runHeadless()
		return
	}
	runWithDashboard()
}

// session owns everything a render loop needs.
type session struct {
	source     *audio.Source
	scene      *scene.Scene
	frame      *renderer.Frame
	bloom      *renderer.Bloom
	compositor *kaleido.Compositor
	params     kaleido.Params
	folded     *image.RGBA
	enc        *encoder.Encoder
}

func newSession(logger *log.Logger) (*session, error) {
	var source *audio.Source
	if CLI.Input != "" {
		var err error
		source, err = audio.OpenFile(CLI.Input, logger)
		if err != nil {
			return nil, err
		}
	} else {
		source = audio.OpenMicrophone(CLI.Device, logger)
	}

	var overlay *renderer.Overlay
	if CLI.Font != "" {
		var err error
		overlay, err = renderer.NewOverlay(CLI.Font, CLI.Title, 48)
		if err != nil {
			source.Close()
			return nil, fmt.Errorf("loading overlay font: %w", err)
		}
	}

	var enc *encoder.Encoder
	if CLI.Output != "" {
		var err error
		enc, err = encoder.New(CLI.Output, CLI.Input)
		if err != nil {
			source.Close()
			return nil, err
		}
	}

	return &session{
		source:     source,
		scene:      scene.New(CLI.Objects),
		frame:      renderer.NewFrame(overlay),
		bloom:      renderer.NewBloom(),
		compositor: kaleido.NewCompositor(),
		params: kaleido.Params{
			Segments: CLI.Segments,
			Aspect:   float64(config.Width) / float64(config.Height),
		},
		folded: image.NewRGBA(image.Rect(0, 0, config.Width, config.Height)),
		enc:    enc,
	}, nil
}

// step advances the session by one frame and returns the folded image.
func (s *session) step(t, dt float64) (*image.RGBA, error) {
	s.source.Tick()
	s.scene.Update(t, dt, s.source.Spectrum(), s.source.Loudness())

	s.frame.Draw(s.scene.Objects)
	img := s.frame.Image()
	s.bloom.Apply(img)
	s.compositor.Apply(s.folded, img, s.params)

	if s.enc != nil {
		if err := s.enc.WriteFrame(s.folded); err != nil {
			return nil, err
		}
	}
	return s.folded, nil
}

// done reports whether the session has a natural end and reached it.
func (s *session) done(elapsed time.Duration) bool {
	if CLI.Duration > 0 && elapsed >= CLI.Duration {
		return true
	}
	return s.source.Exhausted()
}

func (s *session) close() error {
	err := s.source.Close()
	if s.enc != nil {
		if encErr := s.enc.Close(); err == nil {
			err = encErr
		}
	}
	s.frame.Release()
	return err
}

func (s *session) snapshot() {
	if CLI.Snapshot == "" {
		return
	}
	if err := encoder.WriteSnapshot(CLI.Snapshot, s.folded); err != nil {
		cli.PrintWarning(fmt.Sprintf("saving snapshot: %v", err))
	} else {
		cli.PrintSuccess(fmt.Sprintf("Snapshot saved: %s", CLI.Snapshot))
	}
}

func runHeadless() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	sess, err := newSession(logger)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.PrintBanner()
	cli.PrintInfo("Source", sess.source.State().String())
	if CLI.Output != "" {
		cli.PrintInfo("Output", CLI.Output)
	}

	start := time.Now()
	frames, err := renderLoop(ctx, sess, nil)
	if err != nil {
		cli.PrintError(err.Error())
	}

	sess.snapshot()
	if err := sess.close(); err != nil {
		cli.PrintWarning(err.Error())
	}

	cli.PrintSessionSummary(
		cli.FormatDuration(time.Since(start)),
		fmt.Sprintf("%d", frames),
		CLI.Output,
	)
}

func runWithDashboard() {
	// The dashboard owns the terminal; route stray logs nowhere
	logger := log.New(io.Discard, "", 0)

	sess, err := newSession(logger)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewLiveModel(CLI.NoPreview))

	ctx, cancel := context.WithCancel(context.Background())

	var frames int
	var loopErr error
	loopDone := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(loopDone)
		frames, loopErr = renderLoop(ctx, sess, p)
		if loopErr != nil {
			p.Quit()
			return
		}
		p.Send(ui.SessionComplete{
			Duration:   time.Since(start),
			Frames:     frames,
			OutputFile: CLI.Output,
			FileSize:   fileSize(CLI.Output),
		})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-loopDone
		sess.close()
		cli.PrintError(fmt.Sprintf("running dashboard: %v", err))
		os.Exit(1)
	}

	// Dashboard exited, either by quit key or after the summary
	cancel()
	<-loopDone

	sess.snapshot()
	if err := sess.close(); err != nil {
		cli.PrintWarning(err.Error())
	}
	if loopErr != nil {
		cli.PrintError(loopErr.Error())
		os.Exit(1)
	}
}

// renderLoop drives the session at the configured frame rate until the
// context is cancelled or the session reaches a natural end. The program
// p is optional; when present it receives dashboard updates.
func renderLoop(ctx context.Context, sess *session, p *tea.Program) (int, error) {
	ticker := time.NewTicker(time.Second / config.FPS)
	defer ticker.Stop()

	const dt = 1.0 / float64(config.FPS)
	var t float64
	frames := 0
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return frames, nil
		case <-ticker.C:
		}

		img, err := sess.step(t, dt)
		if err != nil {
			return frames, err
		}
		t += dt
		frames++

		if p != nil && frames%3 == 0 {
			var preview *image.RGBA
			if !CLI.NoPreview && frames%6 == 0 {
				preview = img
			}
			spectrum := sess.source.Spectrum()
			frame := make([]byte, len(spectrum))
			copy(frame, spectrum)

			p.Send(ui.FrameUpdate{
				Frame:       frames,
				Elapsed:     time.Since(start),
				Spectrum:    frame,
				Loudness:    sess.source.Loudness(),
				SourceState: sess.source.State().String(),
				Preview:     preview,
			})
		}

		if sess.done(time.Since(start)) {
			return frames, nil
		}
	}
}

func fileSize(path string) int64 {
	if path == "" {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
