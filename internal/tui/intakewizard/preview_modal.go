package intakewizard

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/tui/wizard"
)

// Section headings, in display order.
const (
	sectionFunctional     = "Functional diagram"
	sectionInfrastructure = "Infrastructure diagram"
	sectionSummary        = "Summary"
	sectionTerraform      = "Terraform"
	sectionDecisionRecord = "Decision record"
	sectionChanges        = "Changes since last submission"
)

// PreviewModal shows the artifacts of a successful submission in a
// scrollable modal with Confirm and Change variables actions.
type PreviewModal struct {
	review   intake.ReviewModel
	previous *intake.ReviewModel
	viewport viewport.Model
	buttons  *wizard.ButtonBar
	width    int
	height   int
}

// NewPreviewModal creates the modal. previous is the review this one
// replaced, or nil.
func NewPreviewModal(review intake.ReviewModel, previous *intake.ReviewModel) *PreviewModal {
	vp := viewport.New(
		viewport.WithWidth(modalContentWidth),
		viewport.WithHeight(20),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	buttons := wizard.NewButtonBar([]wizard.Button{
		{ID: wizard.ButtonBack, Label: "Change variables"},
		{ID: wizard.ButtonNext, Label: "Confirm"},
	})
	buttons.SetWidth(modalContentWidth)
	buttons.FocusLast()

	p := &PreviewModal{
		review:   review,
		previous: previous,
		viewport: vp,
		buttons:  buttons,
		width:    modalContentWidth,
		height:   20,
	}
	p.viewport.SetContent(p.Body())
	return p
}

// SetSize resizes the modal's scroll area and re-renders the sections.
func (p *PreviewModal) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(width)
	p.buttons.SetWidth(width)
	vh := height - 2
	if vh < 5 {
		vh = 5
	}
	p.viewport.SetHeight(vh)
	p.viewport.SetContent(p.Body())
}

// Update handles the modal's keys. Unhandled input scrolls.
func (p *PreviewModal) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if !p.buttons.FocusNext() {
				p.buttons.FocusFirst()
			}
			return nil
		case "shift+tab", "left":
			if !p.buttons.FocusPrev() {
				p.buttons.FocusLast()
			}
			return nil
		case "enter", "space", " ":
			if p.buttons.FocusedButton() == wizard.ButtonBack {
				return func() tea.Msg { return PreviewDismissedMsg{} }
			}
			return func() tea.Msg { return PreviewConfirmedMsg{} }
		case "y", "Y":
			return func() tea.Msg { return PreviewConfirmedMsg{} }
		case "esc", "c", "n", "N":
			return func() tea.Msg { return PreviewDismissedMsg{} }
		case "g", "home":
			p.viewport.GotoTop()
			return nil
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// Body renders every section at the modal's width.
func (p *PreviewModal) Body() string {
	s := theme.Current().S()
	width := p.width

	var sections []string
	add := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			body = s.Muted.Render("(not provided)")
		}
		sections = append(sections, s.Section.Render(title)+"\n\n"+body)
	}

	add(sectionFunctional, renderDiagram(p.review.FunctionalDiagram, width))
	add(sectionInfrastructure, renderDiagram(p.review.InfrastructureDiagram, width))
	add(sectionSummary, renderMarkdownOrEmpty(p.review.Rationale, width))
	add(sectionTerraform, renderTerraform(p.review.GeneratedCode))
	add(sectionDecisionRecord, renderMarkdownOrEmpty(p.review.DecisionRecord, width))

	if p.previous != nil {
		if diff := tui.RenderDiff("main.tf", p.previous.GeneratedCode, p.review.GeneratedCode); diff != "" {
			add(sectionChanges, diff)
		}
	}

	return strings.Join(sections, "\n\n")
}

func renderDiagram(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	return tui.RenderMarkdown("```mermaid\n"+strings.TrimSpace(src)+"\n```", width)
}

func renderMarkdownOrEmpty(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	return tui.RenderMarkdown(src, width)
}

func renderTerraform(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	return tui.HighlightCode(strings.TrimRight(src, "\n"), "terraform")
}

// View renders the modal frame around the scroll area.
func (p *PreviewModal) View() string {
	t := theme.Current()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1).
		Render("Architecture Preview")

	hint := wizard.RenderHintBar("↑↓", "scroll", "tab", "switch", "enter", "select", "esc", "change variables")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		p.viewport.View(),
		"",
		p.buttons.Render(),
		hint,
	)

	return lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderFocused)).
		Render(content)
}
