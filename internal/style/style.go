// Package style holds the terminal styles used for distfix output, built on
// Lipgloss with the Ayu palette.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

// Result icons.
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✖"
	IconSkip = "–"
)

var (
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	Error   = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(colorAccent)
	Dim     = lipgloss.NewStyle().Foreground(colorMuted)
	Bold    = lipgloss.NewStyle().Bold(true)
)

// SetColorMode applies the --color flag. "auto" leaves terminal detection to
// Lipgloss and NO_COLOR.
func SetColorMode(mode string) {
	switch mode {
	case "never":
		_ = os.Setenv("NO_COLOR", "1")
		Success = lipgloss.NewStyle()
		Warning = lipgloss.NewStyle()
		Error = lipgloss.NewStyle()
		Info = lipgloss.NewStyle()
		Dim = lipgloss.NewStyle()
		Bold = lipgloss.NewStyle()
	case "always":
		_ = os.Unsetenv("NO_COLOR")
		_ = os.Setenv("CLICOLOR_FORCE", "1")
		Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
		Warning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
		Error = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
		Info = lipgloss.NewStyle().Foreground(colorAccent)
		Dim = lipgloss.NewStyle().Foreground(colorMuted)
		Bold = lipgloss.NewStyle().Bold(true)
	}
}

// Status renders the icon for a "pass", "warn", "fail" or "skip" status.
func Status(status string) string {
	switch status {
	case "pass":
		return Success.Render(IconPass)
	case "warn":
		return Warning.Render(IconWarn)
	case "fail":
		return Error.Render(IconFail)
	default:
		return Dim.Render(IconSkip)
	}
}
