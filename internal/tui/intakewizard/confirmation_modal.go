package intakewizard

import (
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// renderConfirmationModal renders a yes/no modal.
func renderConfirmationModal(title, message string) string {
	t := theme.Current()

	titleText := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Warning)).
		MarginBottom(1).
		Render("⚠ " + title)

	messageText := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(message)

	buttons := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Render("Press Y to confirm, N or ESC to cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleText,
		messageText,
		"",
		buttons,
	)

	return lipgloss.NewStyle().
		Width(50).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Warning)).
		Render(content)
}
