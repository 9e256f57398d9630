package intakewizard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui/theme"
)

const progressBarWidth = 30

// renderProgress renders the step trail and a bar for the sequencer's
// position, e.g.
//
//	✓ Current State › ● Industry › ○ Cloud Provider ...
//	━━━━━━━─────────────────────── 2/5
func renderProgress(seq *intake.Sequencer, width int) string {
	t := theme.Current()
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)
	todo := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	labels := make([]string, 0, seq.Len())
	for i, step := range intake.Steps() {
		switch {
		case i < seq.Index():
			labels = append(labels, done.Render("✓ "+step.Label))
		case i == seq.Index():
			labels = append(labels, active.Render("● "+step.Label))
		default:
			labels = append(labels, todo.Render("○ "+step.Label))
		}
	}
	trail := strings.Join(labels, todo.Render(" › "))
	if width > 0 && lipgloss.Width(trail) > width {
		// Too narrow for the full trail; show only the current step.
		trail = active.Render(fmt.Sprintf("● %s", seq.Current().Label))
	}

	filled := int(seq.Progress() * progressBarWidth)
	bar := active.Render(strings.Repeat("━", filled)) +
		todo.Render(strings.Repeat("─", progressBarWidth-filled))
	counter := todo.Render(fmt.Sprintf(" %d/%d", seq.Index()+1, seq.Len()))

	return lipgloss.JoinVertical(lipgloss.Left, trail, bar+counter)
}
