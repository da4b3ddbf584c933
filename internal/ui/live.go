// Package ui renders the terminal dashboard for a running session: a
// loudness meter, the live spectrum, an optional true-color frame
// preview, and the end-of-session summary.
package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameUpdate carries one render tick's state into the TUI.
type FrameUpdate struct {
	Frame       int
	Elapsed     time.Duration
	Spectrum    []byte
	Loudness    float64     // Boosted reactivity, 0..1
	SourceState string      // Human-readable capture state
	Preview     *image.RGBA // Current frame for terminal preview (optional)
}

// SessionComplete signals the end of the session.
type SessionComplete struct {
	Duration   time.Duration
	Frames     int
	OutputFile string
	FileSize   int64
}

// quitTimerMsg is sent when it's time to quit after showing the summary
type quitTimerMsg struct{}

// liveModel implements the Bubbletea model for a running session
type liveModel struct {
	meter           progress.Model
	lastUpdate      FrameUpdate
	complete        *SessionComplete
	startTime       time.Time
	width           int
	height          int
	completionDelay time.Duration
	cachedPreview   string
	cachedFrameNum  int
	noPreview       bool
}

// NewLiveModel creates the session dashboard model.
func NewLiveModel(noPreview bool) tea.Model {
	meter := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &liveModel{
		meter:           meter,
		startTime:       time.Now(),
		completionDelay: 2 * time.Second,
		noPreview:       noPreview,
	}
}

// Init initializes the model
func (m *liveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.meter.Width = min(msg.Width-30, 50)
		return m, nil

	case FrameUpdate:
		m.lastUpdate = msg
		return m, nil

	case SessionComplete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return quitTimerMsg{}
		})

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		// Any key dismisses the summary early
		if m.complete != nil {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *liveModel) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}

	return m.renderLive()
}

func (m *liveModel) renderLive() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#9D4EDD")).
		Render("Jivescope 🔮")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Live Session"))
	s.WriteString("\n\n")

	if m.lastUpdate.Frame > 0 {
		elapsed := m.lastUpdate.Elapsed
		if elapsed == 0 {
			elapsed = time.Since(m.startTime)
		}

		info := fmt.Sprintf("Frame %d  │  Elapsed: %s  │  Source: %s",
			m.lastUpdate.Frame,
			formatDuration(elapsed),
			m.lastUpdate.SourceState)
		s.WriteString(lipgloss.NewStyle().Faint(true).Render(info))
		s.WriteString("\n\n")

		s.WriteString("Loudness: ")
		s.WriteString(m.meter.ViewAs(m.lastUpdate.Loudness))
		s.WriteString(fmt.Sprintf("  %3d%%", int(m.lastUpdate.Loudness*100)))
		s.WriteString("\n\n")
	} else {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Waiting for audio..."))
		s.WriteString("\n\n")
	}

	if len(m.lastUpdate.Spectrum) > 0 {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Spectrum:"))
		s.WriteString("\n")
		s.WriteString(renderSpectrum(m.lastUpdate.Spectrum, min(m.width-4, 64)))
		s.WriteString("\n")
	}

	if !m.noPreview {
		if m.lastUpdate.Preview != nil && m.lastUpdate.Frame != m.cachedFrameNum {
			grid := DownsampleFrame(m.lastUpdate.Preview, DefaultPreviewConfig())
			m.cachedPreview = RenderPreview(grid)
			m.cachedFrameNum = m.lastUpdate.Frame
		}
		if m.cachedPreview != "" {
			s.WriteString("\n")
			s.WriteString(m.cachedPreview)
		}
	}

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render("Press q to stop"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#9D4EDD")).
		Padding(1, 2).
		Render(s.String())
}

func (m *liveModel) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4A9B4A")).
		Render("✓ Session Complete!")

	s.WriteString(title)
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Duration: %.1fs\n", m.complete.Duration.Seconds()))
	s.WriteString(fmt.Sprintf("Frames:   %d", m.complete.Frames))

	if m.complete.OutputFile != "" {
		s.WriteString(fmt.Sprintf("\nOutput:   %s", m.complete.OutputFile))
		if m.complete.FileSize > 0 {
			s.WriteString(fmt.Sprintf(" (%s)", formatBytes(m.complete.FileSize)))
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4A9B4A")).
		Padding(1, 2).
		Render(s.String()) + "\n"
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

// renderSpectrum draws the byte spectrum as a row of block characters.
func renderSpectrum(spectrum []byte, width int) string {
	if len(spectrum) == 0 || width <= 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	stride := len(spectrum) / width
	if stride == 0 {
		stride = 1
	}

	var result strings.Builder
	count := 0
	for i := 0; i < len(spectrum) && count < width; i += stride {
		idx := int(spectrum[i]) * (len(blocks) - 1) / 255
		result.WriteRune(blocks[idx])
		count++
	}

	return result.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
