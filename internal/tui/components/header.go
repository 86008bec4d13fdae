// Package components provides render-only building blocks for the
// donorlens dashboard. They return strings and hold no state.
package components

import (
	"strings"

	"nathanbeddoewebdev/donorlens/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  donorlens > Cashflow          org 42    │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, right string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("donorlens")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}
	if right != "" {
		right = styles.Subtitle.Render(right)
	}

	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}

// TabBar renders tab titles with the active one highlighted.
func TabBar(width int, titles []string, active int) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		label := t
		if i < 9 {
			label = string(rune('1'+i)) + " " + t
		}
		if i == active {
			parts[i] = styles.TabActive.Render(label)
		} else {
			parts[i] = styles.TabInactive.Render(label)
		}
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
