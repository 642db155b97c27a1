// Package styles provides shared lipgloss styles for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// ChromaStyle is the chroma style name matching the palette above.
const ChromaStyle = "tokyonight-night"

// PhaseStyle styles the heading printed before each probe phase.
var PhaseStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// SectionStyle styles the headings above sample payloads.
var SectionStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Bold(true).
	Underline(true)

// LabelStyle styles the key in key/value lines.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray)
