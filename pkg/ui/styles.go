package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Light/Dark pairs are picked by lipgloss from the terminal background.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5B3CC4", Dark: "#A48BFF"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#1F6FB2", Dark: "#6CB6FF"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0E7C86", Dark: "#56D4DD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#7BD88F"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFC857"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8B949E"}
	ColorDefault = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
)

// categoryColors tints type labels, keyed by category key
var categoryColors = map[string]lipgloss.AdaptiveColor{
	"blueprint":    {Light: "#1F6FB2", Dark: "#6CB6FF"},
	"part":         {Light: "#B26A00", Dark: "#FFC857"},
	"texture":      {Light: "#8E24AA", Dark: "#E29BFF"},
	"code-mod":     {Light: "#6B7280", Dark: "#8B949E"},
	"world":        {Light: "#2E7D32", Dark: "#7BD88F"},
	"solar-system": {Light: "#C2410C", Dark: "#FF9E64"},
	"translation":  {Light: "#0E7C86", Dark: "#56D4DD"},
}

var (
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StylePrimary lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleTitle   lipgloss.Style
	StyleBold    lipgloss.Style

	// Tables
	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
)

const (
	IconSuccess = "✔"
	IconError   = "✘"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconRocket  = "🚀"
)

func init() {
	SetTheme("auto")
}

// SetTheme applies the color_theme setting ("auto", "dark", "light").
// Styles are rebuilt so they pick up the forced background.
func SetTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	StyleSuccess = fg(ColorSuccess).Bold(true)
	StyleError = fg(ColorError).Bold(true)
	StylePrimary = fg(ColorPrimary).Bold(true)
	StyleInfo = fg(ColorInfo)
	StyleMuted = fg(ColorMuted)
	StyleWarning = fg(ColorWarning).Bold(true)
	StyleAccent = fg(ColorAccent)
	StyleTitle = fg(ColorPrimary).Bold(true).Underline(true)
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleTableHeader = fg(ColorPrimary).Bold(true)
	StyleTableRow = fg(ColorDefault)
	StyleTableRowAlt = fg(ColorDefault).Faint(true)
	StyleTableBorder = fg(ColorMuted)
}

// CategoryStyle returns the tint for a category key; unknown keys are muted
func CategoryStyle(key string) lipgloss.Style {
	c, ok := categoryColors[key]
	if !ok {
		return StyleMuted
	}
	return lipgloss.NewStyle().Foreground(c)
}

// FormatSuccess returns a success message with icon
func FormatSuccess(msg string) string {
	return StyleSuccess.Render(IconSuccess + " " + msg)
}

// FormatError returns an error message with icon
func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

func FormatInfo(msg string) string {
	return StyleInfo.Render(IconInfo + " " + msg)
}

func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// FormatRocket is used for installs and long-running commands
func FormatRocket(msg string) string {
	return StylePrimary.Render(IconRocket + " " + msg)
}

func FormatTitle(title string) string {
	return StyleTitle.Render(title)
}

func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}
