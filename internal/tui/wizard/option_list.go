package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui/theme"
)

// OptionList is a single-choice list over an option catalogue. The cursor
// visits every option; only selectable ones can be chosen.
type OptionList struct {
	options  []intake.Option
	cursor   int
	selected string
	notice   string
	focused  bool
	width    int
}

// NewOptionList creates a list with selected preselected. The cursor starts
// on the selected option.
func NewOptionList(options []intake.Option, selected string) *OptionList {
	l := &OptionList{options: options, selected: selected, focused: true, width: 60}
	for i, o := range options {
		if o.Value == selected {
			l.cursor = i
		}
	}
	return l
}

// SetWidth sets the render width.
func (l *OptionList) SetWidth(width int) {
	l.width = width
}

// Selected returns the chosen value.
func (l *OptionList) Selected() string {
	return l.selected
}

// Cursor returns the highlighted index.
func (l *OptionList) Cursor() int {
	return l.cursor
}

// Notice returns the message shown after trying to pick an unavailable
// option.
func (l *OptionList) Notice() string {
	return l.notice
}

func (l *OptionList) Focus() { l.focused = true }
func (l *OptionList) Blur()  { l.focused = false }

// Update handles navigation and selection keys.
func (l *OptionList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !l.focused {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
		l.notice = ""
	case "down", "j":
		if l.cursor < len(l.options)-1 {
			l.cursor++
		}
		l.notice = ""
	case "enter", "space", " ":
		if l.cursor >= len(l.options) {
			return nil
		}
		o := l.options[l.cursor]
		switch {
		case o.Premium:
			l.notice = o.Label + " is a premium option"
			return nil
		case o.Disabled:
			l.notice = o.Label + " is not available yet"
			return nil
		}
		l.notice = ""
		l.selected = o.Value
		return func() tea.Msg { return OptionChosenMsg{Value: o.Value} }
	case "tab":
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}
	return nil
}

// View renders the list with radio markers and badges.
func (l *OptionList) View() string {
	t := theme.Current()
	s := t.S()

	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	var b strings.Builder
	for i, o := range l.options {
		marker := "○"
		if o.Value == l.selected {
			marker = "●"
		}

		label := marker + " " + o.Label
		switch {
		case !o.Selectable():
			label = mutedStyle.Render(label)
		case i == l.cursor && l.focused:
			label = cursorStyle.Render(label)
		default:
			label = itemStyle.Render(label)
		}

		prefix := "  "
		if i == l.cursor && l.focused {
			prefix = cursorStyle.Render("› ")
		}

		b.WriteString(prefix + label)
		switch {
		case o.Premium:
			b.WriteString(" " + s.Badge.Render("Premium"))
		case o.Disabled:
			b.WriteString(" " + mutedStyle.Render("(coming soon)"))
		}
		if i < len(l.options)-1 {
			b.WriteString("\n")
		}
	}

	if l.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Render(l.notice))
	}
	return b.String()
}
