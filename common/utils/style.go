package utils

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

var (
	RedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cc0000"))
	YellowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cc9500"))
	GreenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06cc00"))
	LightBlueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3cc5ff"))
	GrayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#adadad"))

	// BucketIndexStyle renders the index column of a styled bucket listing.
	BucketIndexStyle = LightBlueStyle.Width(6).Align(lipgloss.Right)
	// EmptyBucketStyle renders a bucket that holds no entries.
	EmptyBucketStyle = GrayStyle
	// FilledBucketStyle renders a bucket that holds at least one entry.
	FilledBucketStyle = GreenStyle.Bold(true)
)
