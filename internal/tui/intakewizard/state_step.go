package intakewizard

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/tui/wizard"
)

// maxActualStateLen caps the free-text description.
const maxActualStateLen = 5000

// StateStep collects the free-text description of the current
// infrastructure. Every edit is written through to the form.
type StateStep struct {
	form     *intake.Form
	textarea textarea.Model
	width    int
	height   int
}

// NewStateStep creates the step seeded with the form's current value.
func NewStateStep(form *intake.Form) *StateStep {
	ta := textarea.New()
	ta.Placeholder = "Describe your current infrastructure...\n\nExample:\n- A monolith on a single VM\n- PostgreSQL on the same host\n- Nightly cron backups"
	ta.CharLimit = maxActualStateLen
	ta.SetHeight(8)
	ta.SetWidth(60)
	ta.SetValue(form.Value(intake.FieldActualState))
	ta.Focus()

	return &StateStep{form: form, textarea: ta}
}

// Init initializes the step.
func (s *StateStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the step.
func (s *StateStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			_ = s.form.HandleBlur(intake.FieldActualState)
			if s.form.Error(intake.FieldActualState) != "" {
				return nil
			}
			return func() tea.Msg { return StepDoneMsg{} }
		case "tab":
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}

	case tea.PasteMsg:
		var cmd tea.Cmd
		s.textarea, cmd = s.textarea.Update(tea.PasteMsg{Content: tui.SanitizePaste(msg.Content, maxActualStateLen)})
		s.sync()
		return cmd
	}

	var cmd tea.Cmd
	s.textarea, cmd = s.textarea.Update(msg)
	s.sync()
	return cmd
}

func (s *StateStep) sync() {
	if s.textarea.Value() == s.form.Value(intake.FieldActualState) {
		return
	}
	_ = s.form.SetField(intake.FieldActualState, s.textarea.Value())
}

// View renders the step content.
func (s *StateStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(intake.Steps()[intake.StepCurrentState].Description)

	border := t.BorderDefault
	if s.textarea.Focused() {
		border = t.BorderFocused
	}
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Render(s.textarea.View())

	parts := []string{instruction, box}
	if msg := s.form.VisibleError(intake.FieldActualState); msg != "" {
		parts = append(parts, wizard.RenderFieldError(msg))
	}
	parts = append(parts, "", wizard.RenderHintBar("ctrl+d", "next", "tab", "buttons", "esc", "cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Value returns the text as typed.
func (s *StateStep) Value() string {
	return s.textarea.Value()
}

// SetSize updates the size of the step.
func (s *StateStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.textarea.SetWidth(width - 4)
	h := height - 10
	if h < 6 {
		h = 6
	}
	if h > 15 {
		h = 15
	}
	s.textarea.SetHeight(h)
}

// Focus focuses the textarea.
func (s *StateStep) Focus() tea.Cmd {
	return s.textarea.Focus()
}

// Blur blurs the textarea and marks the field touched.
func (s *StateStep) Blur() {
	s.textarea.Blur()
	_ = s.form.HandleBlur(intake.FieldActualState)
}
