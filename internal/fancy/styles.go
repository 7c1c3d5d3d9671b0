// Package fancy provides pretty printing utilities and styling for CLI output
package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ComponentStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ToolStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	URLStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	SecretStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// ToolText styles a tool name
func ToolText(text string) string {
	return ToolStyle.Render(text)
}

// SourceText styles the name of a configuration source
func SourceText(text string) string {
	return SourceStyle.Render(text)
}

// URLText styles a URL
func URLText(text string) string {
	return URLStyle.Render(text)
}

// SecretText masks a credential, keeping only the last four characters.
func SecretText(secret string) string {
	if secret == "" {
		return SecretStyle.Render("(none)")
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return SecretStyle.Render("****")
	}
	return SecretStyle.Render("****" + string(runes[len(runes)-4:]))
}

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return ToolStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return ComponentStyle.Render(text)
}

// FormatSection renders a section header, with the item count when positive.
func FormatSection(name string, count int) string {
	if count <= 0 {
		return HeaderStyle.Render(name)
	}
	return HeaderStyle.Render(fmt.Sprintf("%s (%d)", name, count))
}
