package ui

import "github.com/charmbracelet/lipgloss"

// streakmap's palette: teal greens for study, ember for streaks.
var (
	Teal   = lipgloss.Color("#38ABCF")
	Mint   = lipgloss.Color("#ABF9EF")
	Aqua   = lipgloss.Color("#4AD5E4")
	Deep   = lipgloss.Color("#218A9D")
	Ember  = lipgloss.Color("#FF8C42")
	Ruby   = lipgloss.Color("#E0115F")
	Amber  = lipgloss.Color("#FFBF00")
	Dim    = lipgloss.Color("#666666")
	Bright = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Aqua)

	Subtitle = lipgloss.NewStyle().
			Foreground(Teal)

	Success = lipgloss.NewStyle().
		Foreground(Mint)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Deep).
		Padding(0, 1)
)

// Icon constants.
const (
	IconMap   = "🗓 "
	IconCard  = "🃏"
	IconFire  = "🔥"
	IconSnow  = "🧊"
	IconWarn  = "⚠️ "
	IconError = "✗ "
	IconOk    = "✓ "
	IconDot   = "·"
)
