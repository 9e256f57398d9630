package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// RenderHintBar renders key-description pairs.
// Example: RenderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	t := theme.Current()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2))

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + sepStyle.Render("•") + " ")
		}
		b.WriteString(keyStyle.Render(pairs[i]) + " " + descStyle.Render(pairs[i+1]))
	}
	return b.String()
}

// RenderFieldError renders an inline validation message, or "" for none.
func RenderFieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Current().Error)).
		Render("✗ " + msg)
}
