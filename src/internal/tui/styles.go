// Package tui provides styled console output using lipgloss for rich terminal UI.
// The mvn proxy binary does not import it, which keeps that binary small.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Lazy initialization to avoid cold start penalty from lipgloss terminal detection
var (
	initOnce sync.Once

	colorPrimary lipgloss.Color
	colorSuccess lipgloss.Color
	colorWarning lipgloss.Color
	colorMuted   lipgloss.Color

	StyleVersion       lipgloss.Style
	StyleActiveVersion lipgloss.Style
	StyleMuted         lipgloss.Style
	StyleInfoBox       lipgloss.Style
	StyleWarningBox    lipgloss.Style

	StyleTableHeader lipgloss.Style
	StyleTableCell   lipgloss.Style
	StyleTableBorder lipgloss.Style
)

func initStyles() {
	initOnce.Do(func() {
		// Force TrueColor profile to skip slow terminal capability detection
		// See: https://github.com/charmbracelet/lipgloss/issues/86
		lipgloss.SetColorProfile(termenv.TrueColor)

		colorPrimary = lipgloss.Color("39")  // Cyan
		colorSuccess = lipgloss.Color("42")  // Green
		colorWarning = lipgloss.Color("214") // Orange
		colorMuted = lipgloss.Color("245")   // Gray

		StyleVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

		StyleActiveVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

		StyleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

		StyleInfoBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

		StyleWarningBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1)

		StyleTableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingRight(2)

		StyleTableCell = lipgloss.NewStyle().
			PaddingRight(2)

		StyleTableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	})
}

// RenderVersion renders a version string with styling
func RenderVersion(version string) string {
	initStyles()
	return StyleVersion.Render(version)
}

// RenderActiveVersion renders the default version with styling
func RenderActiveVersion(version string) string {
	initStyles()
	return StyleActiveVersion.Render(version)
}

// RenderMuted renders text in a muted/dim style
func RenderMuted(text string) string {
	initStyles()
	return StyleMuted.Render(text)
}

// RenderInfoBox renders content in an info-styled box
func RenderInfoBox(content string) string {
	initStyles()
	return StyleInfoBox.Render(content)
}

// RenderWarningBox renders content in a warning-styled box
func RenderWarningBox(content string) string {
	initStyles()
	return StyleWarningBox.Render(content)
}
