package intakewizard

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/debuggies/archintake/internal/tui"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/tui/wizard"
)

// ReviewStep summarizes the answers before submission. The actual state
// can be edited inline; while editing, submission is disabled.
type ReviewStep struct {
	session *intake.Session
	editor  textarea.Model
	spinner spinner.Model
	width   int
	height  int
}

// NewReviewStep creates the review step for session.
func NewReviewStep(session *intake.Session) *ReviewStep {
	ta := textarea.New()
	ta.CharLimit = maxActualStateLen
	ta.SetHeight(5)
	ta.SetWidth(60)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &ReviewStep{
		session: session,
		editor:  ta,
		spinner: s,
		width:   60,
		height:  20,
	}
}

// Init initializes the review step.
func (r *ReviewStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the dimensions for the review step.
func (r *ReviewStep) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.editor.SetWidth(width - 4)
}

// Update handles messages for the review step.
func (r *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !r.session.Submitting() {
			return nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return cmd

	case ActualStateEditedMsg:
		_ = r.session.Form.SetField(intake.FieldActualState, strings.TrimRight(msg.Content, "\n"))
		r.editor.SetValue(r.session.Form.Value(intake.FieldActualState))
		return nil

	case tea.PasteMsg:
		if !r.session.Editing() {
			return nil
		}
		var cmd tea.Cmd
		r.editor, cmd = r.editor.Update(tea.PasteMsg{Content: tui.SanitizePaste(msg.Content, maxActualStateLen)})
		r.sync()
		return cmd

	case tea.KeyPressMsg:
		if r.session.Editing() {
			return r.updateEditing(msg)
		}
		if r.session.Submitting() {
			return nil
		}
		switch msg.String() {
		case "e":
			return r.startEditing()
		case "ctrl+e":
			return r.openEditor()
		case "s":
			return r.requestSubmit()
		case "r":
			if r.session.LastError() != nil {
				return r.requestSubmit()
			}
		case "tab":
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}
	}
	return nil
}

func (r *ReviewStep) updateEditing(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+s":
		r.stopEditing()
		return nil
	case "ctrl+e":
		return r.openEditor()
	}
	var cmd tea.Cmd
	r.editor, cmd = r.editor.Update(msg)
	r.sync()
	return cmd
}

func (r *ReviewStep) startEditing() tea.Cmd {
	if !r.session.ToggleEditing() {
		return nil
	}
	r.editor.SetValue(r.session.Form.Value(intake.FieldActualState))
	return r.editor.Focus()
}

func (r *ReviewStep) stopEditing() {
	r.sync()
	r.editor.Blur()
	if r.session.Editing() {
		r.session.ToggleEditing()
	}
}

// Editing reports whether the inline editor is open.
func (r *ReviewStep) Editing() bool {
	return r.session.Editing()
}

func (r *ReviewStep) sync() {
	if r.editor.Value() == r.session.Form.Value(intake.FieldActualState) {
		return
	}
	_ = r.session.Form.SetField(intake.FieldActualState, r.editor.Value())
}

func (r *ReviewStep) requestSubmit() tea.Cmd {
	if !r.session.CanSubmit() {
		return nil
	}
	return func() tea.Msg { return SubmitRequestedMsg{} }
}

// SpinnerTick starts the busy indicator.
func (r *ReviewStep) SpinnerTick() tea.Cmd {
	return r.spinner.Tick
}

// openEditor launches $EDITOR on the actual state.
func (r *ReviewStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "archintake_state_*.md")
	if err != nil {
		logger.Warn("Failed to create temp file for editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(r.session.Form.Value(intake.FieldActualState)); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	path := tmpfile.Name()
	cmd, err := editor.Command("archintake", path)
	if err != nil {
		logger.Warn("No editor available: %v", err)
		_ = os.Remove(path)
		return nil
	}
	return tea.ExecProcess(cmd, editorFinished(path))
}

// editorFinished reads the edited file back and removes it whatever the
// outcome.
func editorFinished(path string) tea.ExecCallback {
	return func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			logger.Warn("Editor exited with error: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read edited file: %v", err)
			return nil
		}
		return ActualStateEditedMsg{Content: string(content)}
	}
}

// View renders the review step.
func (r *ReviewStep) View() string {
	t := theme.Current()
	s := t.S()
	form := r.session.Form
	values := form.Values()

	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))

	var b strings.Builder
	row := func(label string, field intake.Field, value string) {
		b.WriteString(s.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
		if msg := form.VisibleError(field); msg != "" {
			b.WriteString(wizard.RenderFieldError(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Actual state: read-only text or the inline editor.
	b.WriteString(s.Label.Render("Actual state"))
	if r.session.Editing() {
		b.WriteString(s.Muted.Render(" (editing)"))
	}
	b.WriteString("\n")
	if r.session.Editing() {
		b.WriteString(lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocused)).
			Render(r.editor.View()))
	} else {
		state := values.ActualState
		if strings.TrimSpace(state) == "" {
			state = s.Muted.Render("(empty)")
		}
		b.WriteString(valueStyle.Width(r.width).Render(state))
	}
	b.WriteString("\n")
	if msg := form.VisibleError(intake.FieldActualState); msg != "" {
		b.WriteString(wizard.RenderFieldError(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row("Industry", intake.FieldIndustry, values.Industry)
	row("Cloud provider", intake.FieldCloud, optionLabel(intake.FieldCloud, values.Cloud))
	row("Environment", intake.FieldEnvironment, values.Environment)

	switch {
	case r.session.Submitting():
		b.WriteString(r.spinner.View() + " Loading...")
		b.WriteString("\n\n")
	case r.session.LastError() != nil:
		b.WriteString(s.ErrorText.Render("✗ Submission failed: " + r.session.LastError().Error()))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Press r to retry"))
		b.WriteString("\n\n")
	}

	switch {
	case r.session.Editing():
		b.WriteString(wizard.RenderHintBar("esc", "done", "ctrl+e", "$EDITOR"))
	case r.session.Submitting():
		b.WriteString(wizard.RenderHintBar("ctrl+c", "quit"))
	default:
		b.WriteString(wizard.RenderHintBar(
			"e", "edit",
			"ctrl+e", "$EDITOR",
			"s", "submit",
			"tab", "buttons",
			"ctrl+r", "restart",
			"esc", "back",
		))
	}

	return b.String()
}

func optionLabel(f intake.Field, value string) string {
	if o, ok := intake.LookupOption(f, value); ok && o.Label != value {
		return o.Label + " (" + value + ")"
	}
	return value
}
