// Package intakewizard is the full-screen intake wizard: four question
// steps, a review step with inline editing, and a preview modal for the
// artifacts returned by the workflow.
package intakewizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/debuggies/archintake/internal/artifacts"
	"github.com/debuggies/archintake/internal/hooks"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/debuggies/archintake/internal/tui"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/tui/wizard"
)

// Modal layout constants
const (
	modalWidth        = 76                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 70
)

// ErrCancelled is returned by Run when the user quits the wizard.
var ErrCancelled = errors.New("wizard cancelled by user")

// Client is the part of the workflow client the wizard uses.
type Client interface {
	intake.Submitter
	HasProjectEndpoint() bool
	CreateProject(ctx context.Context, review intake.ReviewModel) (json.RawMessage, error)
}

// Options configures a wizard run.
type Options struct {
	Client Client
	// ExportDir, when set, receives the artifacts of a confirmed review.
	ExportDir string
	// ConversationID seeds the conversation token.
	ConversationID string
}

// Result holds what a finished wizard run produced.
type Result struct {
	Values         intake.FormValues
	Review         intake.ReviewModel
	Confirmed      bool
	ConversationID string
	ExportedTo     string
}

// WizardModel is the main BubbleTea model for the intake wizard.
type WizardModel struct {
	ctx       context.Context
	opts      Options
	session   *intake.Session
	width     int
	height    int
	cancelled bool

	// Step components; rebuilt from the form each time a step is entered.
	stateStep  *StateStep
	choiceStep *ChoiceStep
	reviewStep *ReviewStep
	preview    *PreviewModal

	// Cached button bars per step (prevents focus reset on re-render)
	buttonBars    map[int]*wizard.ButtonBar
	buttonFocused bool

	confirmRestart bool
	toast          *tui.Toast
	result         Result
}

// New creates a wizard model on the first step.
func New(ctx context.Context, opts Options) *WizardModel {
	session := intake.NewSession()
	session.SetConversationID(opts.ConversationID)
	return &WizardModel{
		ctx:        ctx,
		opts:       opts,
		session:    session,
		buttonBars: make(map[int]*wizard.ButtonBar),
		toast:      tui.NewToast(),
	}
}

// Run is the entry point for the wizard. It runs a full-screen program
// until the user quits and returns what the run produced.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Client == nil {
		return Result{}, fmt.Errorf("wizard requires a workflow client")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	finalModel, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type")
	}
	if wizModel.cancelled {
		return wizModel.Result(), ErrCancelled
	}
	return wizModel.Result(), nil
}

// Session exposes the wizard's state.
func (m *WizardModel) Session() *intake.Session {
	return m.session
}

// Result returns what the run has produced so far.
func (m *WizardModel) Result() Result {
	r := m.result
	r.Values = m.session.Form.Values()
	r.ConversationID = m.session.ConversationID()
	if review, ok := m.session.Review(); ok {
		r.Review = review
	}
	return r
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		if m.confirmRestart {
			switch msg.String() {
			case "y", "Y":
				m.confirmRestart = false
				return m, func() tea.Msg { return RestartWizardMsg{} }
			case "n", "N", "esc":
				m.confirmRestart = false
			}
			return m, nil
		}

		if m.previewOpen() {
			return m, m.preview.Update(msg)
		}

		if m.buttonFocused {
			if bar := m.currentButtonBar(); bar != nil {
				switch msg.String() {
				case "tab", "right":
					if !bar.FocusNext() {
						return m, m.focusStepContent()
					}
					return m, nil
				case "shift+tab", "left":
					if !bar.FocusPrev() {
						return m, m.focusStepContent()
					}
					return m, nil
				case "enter", "space", " ":
					return m.activateButton(bar.FocusedButton())
				case "esc":
					return m, m.focusStepContent()
				}
				return m, nil
			}
		}

		switch msg.String() {
		case "ctrl+r":
			if !m.session.Submitting() {
				m.confirmRestart = true
			}
			return m, nil
		case "esc":
			if m.session.Steps.Index() == intake.StepCurrentState {
				m.cancelled = true
				return m, tea.Quit
			}
			// The review step closes its inline editor on esc.
			if m.session.Editing() {
				break
			}
			return m.goBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case StepDoneMsg:
		return m.goNext()

	case SubmitRequestedMsg:
		return m, m.submit()

	case SubmissionResultMsg:
		return m, m.handleSubmissionResult(msg)

	case PreviewConfirmedMsg:
		return m, m.confirmPreview()

	case PreviewDismissedMsg:
		logger.Debug("Preview dismissed, back to variables")
		m.session.CloseReview()
		m.preview = nil
		return m, nil

	case ProjectCreatedMsg:
		if msg.Err != nil {
			logger.Error("Project creation failed: %v", msg.Err)
			return m, m.toast.Show("Project creation failed: "+msg.Err.Error(), tui.ToastError)
		}
		logger.Info("Project created: %s", string(msg.Body))
		return m, m.toast.Show("Project created", tui.ToastSuccess)

	case ExportedMsg:
		if msg.Err != nil {
			logger.Error("Export failed: %v", msg.Err)
			return m, m.toast.Show("Export failed: "+msg.Err.Error(), tui.ToastError)
		}
		m.result.ExportedTo = msg.Dir
		return m, m.toast.Show("Artifacts written to "+msg.Dir, tui.ToastSuccess)

	case tui.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case RestartWizardMsg:
		logger.Debug("Restarting wizard from first step")
		m.session.Reset()
		m.preview = nil
		m.buttonBars = make(map[int]*wizard.ButtonBar)
		m.buttonFocused = false
		m.result = Result{}
		return m, m.initCurrentStep()

	case wizard.TabExitForwardMsg:
		if bar := m.currentButtonBar(); bar != nil && bar.FocusFirst() {
			m.buttonFocused = true
			m.blurStepContent()
		}
		return m, nil

	case wizard.TabExitBackwardMsg:
		if bar := m.currentButtonBar(); bar != nil && bar.FocusLast() {
			m.buttonFocused = true
			m.blurStepContent()
		}
		return m, nil
	}

	return m, m.updateCurrentStep(msg)
}

func (m *WizardModel) previewOpen() bool {
	return m.preview != nil && m.session.ReviewOpen()
}

// goNext advances one step, marking the fields of the step being left as
// touched so their errors become visible.
func (m *WizardModel) goNext() (tea.Model, tea.Cmd) {
	m.blurStepContent()
	if !m.session.Next() {
		return m, nil
	}
	m.buttonFocused = false
	return m, m.initCurrentStep()
}

func (m *WizardModel) goBack() (tea.Model, tea.Cmd) {
	if !m.session.Back() {
		return m, nil
	}
	m.buttonFocused = false
	return m, m.initCurrentStep()
}

func (m *WizardModel) activateButton(id wizard.ButtonID) (tea.Model, tea.Cmd) {
	switch id {
	case wizard.ButtonBack:
		return m.goBack()
	case wizard.ButtonNext:
		if m.session.Steps.IsTerminal() {
			return m, m.submit()
		}
		return m.goNext()
	}
	return m, nil
}

// submit starts a request if the session allows one. The response comes
// back as a SubmissionResultMsg.
func (m *WizardModel) submit() tea.Cmd {
	payload, gen, err := m.session.BeginSubmit()
	if err != nil {
		logger.Debug("Submit not started: %v", err)
		return nil
	}
	logger.Info("Submitting intake (generation %d)", gen)

	client := m.opts.Client
	ctx := m.ctx
	send := func() tea.Msg {
		sub, err := client.Submit(ctx, payload)
		return SubmissionResultMsg{Generation: gen, Submission: sub, Err: err}
	}

	m.refreshButtons()
	if m.reviewStep != nil {
		return tea.Batch(m.reviewStep.SpinnerTick(), send)
	}
	return send
}

func (m *WizardModel) handleSubmissionResult(msg SubmissionResultMsg) tea.Cmd {
	err := m.session.CompleteSubmit(msg.Generation, msg.Submission, msg.Err)
	m.refreshButtons()
	switch {
	case errors.Is(err, intake.ErrStaleResult):
		return nil
	case err != nil:
		// Shown as a banner on the review step.
		return nil
	}

	review, _ := m.session.Review()
	var previous *intake.ReviewModel
	if prev, ok := m.session.PreviousReview(); ok {
		previous = &prev
	}
	m.preview = NewPreviewModal(review, previous)
	m.sizePreview()
	return nil
}

// confirmPreview closes the preview and forwards the review to the
// project endpoint and the export directory when configured.
func (m *WizardModel) confirmPreview() tea.Cmd {
	review, ok := m.session.ConfirmReview()
	m.preview = nil
	if !ok {
		return nil
	}
	m.result.Confirmed = true

	var cmds []tea.Cmd
	if m.opts.Client.HasProjectEndpoint() {
		client, ctx := m.opts.Client, m.ctx
		cmds = append(cmds, func() tea.Msg {
			body, err := client.CreateProject(ctx, review)
			return ProjectCreatedMsg{Body: body, Err: err}
		})
	}
	if m.opts.ExportDir != "" {
		dir := m.opts.ExportDir
		values := m.session.Form.Values()
		conversationID := m.session.ConversationID()
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			title := artifacts.Title(values)
			out, err := artifacts.Export(dir, title, values, review, conversationID)
			if err != nil {
				return ExportedMsg{Err: err}
			}
			hookOut, err := hooks.RunPostExport(ctx, out, hooks.Variables{Title: title, ConversationID: conversationID})
			if err != nil {
				logger.Warn("post_export hook: %v", err)
			} else if hookOut != "" {
				logger.Info("post_export hook output:\n%s", hookOut)
			}
			return ExportedMsg{Dir: out}
		})
	}
	if len(cmds) == 0 {
		cmds = append(cmds, m.toast.Show("Architecture confirmed", tui.ToastSuccess))
	}
	return tea.Batch(cmds...)
}

// initCurrentStep builds the component for the current step.
func (m *WizardModel) initCurrentStep() tea.Cmd {
	var cmd tea.Cmd
	m.stateStep, m.choiceStep, m.reviewStep = nil, nil, nil

	index := m.session.Steps.Index()
	step := m.session.Steps.Current()
	switch index {
	case intake.StepCurrentState:
		m.stateStep = NewStateStep(m.session.Form)
		cmd = m.stateStep.Init()
	case intake.StepReview:
		m.reviewStep = NewReviewStep(m.session)
		cmd = m.reviewStep.Init()
	default:
		m.choiceStep = NewChoiceStep(m.session.Form, step, step.Fields[0])
	}
	m.updateCurrentStepSize()
	m.refreshButtons()
	return cmd
}

// updateCurrentStep forwards a message to the current step.
func (m *WizardModel) updateCurrentStep(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.stateStep != nil:
		cmd = m.stateStep.Update(msg)
	case m.choiceStep != nil:
		cmd = m.choiceStep.Update(msg)
	case m.reviewStep != nil:
		cmd = m.reviewStep.Update(msg)
		m.refreshButtons()
	}
	return cmd
}

func (m *WizardModel) focusStepContent() tea.Cmd {
	m.buttonFocused = false
	if bar := m.currentButtonBar(); bar != nil {
		bar.Blur()
	}
	switch {
	case m.stateStep != nil:
		return m.stateStep.Focus()
	case m.choiceStep != nil:
		m.choiceStep.Focus()
	}
	return nil
}

func (m *WizardModel) blurStepContent() {
	switch {
	case m.stateStep != nil:
		m.stateStep.Blur()
	case m.choiceStep != nil:
		m.choiceStep.Blur()
	}
}

// currentButtonBar returns the cached bar for the current step, creating
// it on first use.
func (m *WizardModel) currentButtonBar() *wizard.ButtonBar {
	index := m.session.Steps.Index()
	bar, ok := m.buttonBars[index]
	if !ok {
		label := "Next →"
		if m.session.Steps.IsTerminal() {
			label = "Submit"
		}
		bar = wizard.NewButtonBar(wizard.CreateBackNextButtons(index > 0, true, label))
		bar.SetWidth(modalContentWidth)
		m.buttonBars[index] = bar
	}
	return bar
}

// refreshButtons syncs button availability with the session: Back is
// unavailable while a request is in flight, Submit also while editing.
func (m *WizardModel) refreshButtons() {
	bar := m.currentButtonBar()
	busy := m.session.Submitting()
	bar.SetEnabled(wizard.ButtonBack, m.session.Steps.Index() > 0 && !busy)
	if m.session.Steps.IsTerminal() {
		bar.SetEnabled(wizard.ButtonNext, m.session.CanSubmit())
	} else {
		bar.SetEnabled(wizard.ButtonNext, !busy)
	}
	if m.buttonFocused && !bar.IsFocused() {
		m.buttonFocused = false
	}
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *WizardModel) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	// Subtract modal chrome: padding, border, title, progress and buttons
	height -= 12
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m *WizardModel) updateCurrentStepSize() {
	width, height := m.getModalContentSize()
	switch {
	case m.stateStep != nil:
		m.stateStep.SetSize(width, height)
	case m.choiceStep != nil:
		m.choiceStep.SetSize(width, height)
	case m.reviewStep != nil:
		m.reviewStep.SetSize(width, height)
	}
	m.sizePreview()
}

func (m *WizardModel) sizePreview() {
	if m.preview == nil {
		return
	}
	height := m.height - 10
	if height < 10 {
		height = 10
	}
	m.preview.SetSize(modalContentWidth, height)
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = lipgloss.NewLayer(m.render())
	return view
}

// render draws the screen: the active modal centered, the toast on the
// last line.
func (m *WizardModel) render() string {
	if m.width == 0 || m.height == 0 {
		// Not ready to render
		return ""
	}

	var content string
	switch {
	case m.confirmRestart:
		content = renderConfirmationModal("Start over?", "All answers will be cleared. The conversation with the workflow is kept.")
	case m.previewOpen():
		content = m.preview.View()
	default:
		content = m.renderCurrentStep()
	}

	centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})
	if toast := m.toast.View(m.width); toast != "" {
		uv.NewStyledString(toast).Draw(canvas, uv.Rectangle{
			Min: uv.Position{X: 0, Y: m.height - 1},
			Max: uv.Position{X: m.width, Y: m.height},
		})
	}
	return canvas.Render()
}

// renderCurrentStep renders the modal for the current step.
func (m *WizardModel) renderCurrentStep() string {
	t := theme.Current()
	seq := m.session.Steps

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		Render(fmt.Sprintf("Architecture Intake - Step %d: %s", seq.Index()+1, seq.Current().Label))

	var stepContent string
	switch {
	case m.stateStep != nil:
		stepContent = m.stateStep.View()
	case m.choiceStep != nil:
		stepContent = m.choiceStep.View()
	case m.reviewStep != nil:
		stepContent = m.reviewStep.View()
	}

	m.refreshButtons()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		renderProgress(seq, modalContentWidth),
		"",
		stepContent,
		"",
		m.currentButtonBar().Render(),
	)

	border := t.BorderDefault
	if m.session.Submitting() {
		border = t.BorderFocused
	}
	return lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Render(content)
}
