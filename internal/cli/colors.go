package cli

import "github.com/charmbracelet/lipgloss"

// Prism colour palette
// Shared theme colours for consistent branding across CLI and TUI
var (
	// Core prism colours (cool to hot)
	PrismCyan    = lipgloss.Color("#00E5FF") // Electric cyan
	PrismViolet  = lipgloss.Color("#9D4EDD") // Violet
	PrismMagenta = lipgloss.Color("#FF2E88") // Hot magenta
	PrismGold    = lipgloss.Color("#F8B31D") // Brand gold

	// Accent colours
	CoolGray = lipgloss.Color("#6C7086") // Slate for subtle text
)
