package tui

import "github.com/charmbracelet/lipgloss"

// theme is the set of styles for one color scheme
type theme struct {
	name string

	title   lipgloss.Style
	panel   lipgloss.Style
	art     lipgloss.Style
	status  lipgloss.Style
	key     lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
}

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#F25D94")
	accentColor    = lipgloss.Color("#04B575")
	textColor      = lipgloss.Color("#FAFAFA")
	mutedColor     = lipgloss.Color("#626262")
	errorColor     = lipgloss.Color("#FF5F87")
	inkColor       = lipgloss.Color("#1A1A1A")
	paperColor     = lipgloss.Color("#F5F5F0")
)

func newTheme(name string, fg, bg, border lipgloss.Color) theme {
	return theme{
		name: name,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			PaddingLeft(2).
			PaddingRight(2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		art: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg),
		status: lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1),
		key: lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true),
		errText: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),
	}
}

var (
	darkTheme  = newTheme("dark", textColor, inkColor, primaryColor)
	lightTheme = newTheme("light", inkColor, paperColor, secondaryColor)
)
