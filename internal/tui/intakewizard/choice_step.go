package intakewizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/tui/wizard"
)

// ChoiceStep picks one value from a field's option catalogue. It serves
// the industry, cloud provider and environment steps.
type ChoiceStep struct {
	field intake.Field
	desc  string
	form  *intake.Form
	list  *wizard.OptionList
}

// NewChoiceStep creates a step for field on the given step descriptor.
func NewChoiceStep(form *intake.Form, step intake.StepDescriptor, field intake.Field) *ChoiceStep {
	return &ChoiceStep{
		field: field,
		desc:  step.Description,
		form:  form,
		list:  wizard.NewOptionList(intake.Options(field), form.Value(field)),
	}
}

// Field returns the field this step edits.
func (c *ChoiceStep) Field() intake.Field {
	return c.field
}

// Update handles messages for the step. Choosing an option writes it to
// the form and asks the wizard to advance.
func (c *ChoiceStep) Update(msg tea.Msg) tea.Cmd {
	if chosen, ok := msg.(wizard.OptionChosenMsg); ok {
		_ = c.form.SetField(c.field, chosen.Value)
		return func() tea.Msg { return StepDoneMsg{} }
	}
	return c.list.Update(msg)
}

// View renders the step content.
func (c *ChoiceStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(c.desc)

	parts := []string{instruction, c.list.View()}
	if msg := c.form.VisibleError(c.field); msg != "" {
		parts = append(parts, "", wizard.RenderFieldError(msg))
	}
	parts = append(parts, "", wizard.RenderHintBar("↑↓", "navigate", "enter", "select", "tab", "buttons", "esc", "back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the step.
func (c *ChoiceStep) SetSize(width, _ int) {
	c.list.SetWidth(width)
}

func (c *ChoiceStep) Focus() { c.list.Focus() }

// Blur blurs the list and marks the field touched.
func (c *ChoiceStep) Blur() {
	c.list.Blur()
	_ = c.form.HandleBlur(c.field)
}
