package components

import (
	"strings"

	"nathanbeddoewebdev/donorlens/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a single key binding for the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key binding help bar at the bottom of the screen.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = styles.FormatKeyBinding(b.Key, b.Desc)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(strings.Join(parts, styles.KeySepStyle.Render("  ")))
}

// Level is the severity of a status bar message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// StatusBar renders a status message line between the content and footer.
func StatusBar(width int, message string, level Level) string {
	if message == "" {
		return ""
	}

	style := styles.MutedText
	switch level {
	case LevelWarn:
		style = styles.WarningText
	case LevelError:
		style = styles.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(message))
}
