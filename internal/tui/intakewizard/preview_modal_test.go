package intakewizard

import (
	"strings"
	"testing"

	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui/testfixtures"
	"github.com/debuggies/archintake/internal/tui/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewModal_SectionOrder(t *testing.T) {
	p := NewPreviewModal(testfixtures.SampleReview(), nil)

	body := testfixtures.Plain(p.Body())
	last := -1
	for _, heading := range []string{sectionFunctional, sectionInfrastructure, sectionSummary, sectionTerraform, sectionDecisionRecord} {
		i := strings.Index(body, heading)
		require.Greater(t, i, last, "%q out of order", heading)
		last = i
	}
	assert.NotContains(t, body, sectionChanges, "no diff without a previous review")

	assert.Contains(t, body, "ALB --> ECS")
	assert.Contains(t, body, `resource "aws_ecs_cluster" "main"`)
	assert.Contains(t, body, "ECS Fargate")
}

func TestPreviewModal_EmptySections(t *testing.T) {
	p := NewPreviewModal(intake.ReviewModel{Rationale: "Only rationale"}, nil)

	body := testfixtures.Plain(p.Body())
	assert.Equal(t, 4, strings.Count(body, "(not provided)"))
	assert.Contains(t, body, "Only rationale")
}

func TestPreviewModal_DiffOnlyWhenTerraformChanged(t *testing.T) {
	prev := testfixtures.SampleReview()

	same := NewPreviewModal(testfixtures.SampleReview(), &prev)
	assert.NotContains(t, testfixtures.Plain(same.Body()), sectionChanges)

	changed := NewPreviewModal(testfixtures.RevisedReview(), &prev)
	body := testfixtures.Plain(changed.Body())
	assert.Contains(t, body, sectionChanges)
	assert.Contains(t, body, `-  name = "orders"`)
	assert.Contains(t, body, `+  name = "orders-prod"`)
}

func TestPreviewModal_Keys(t *testing.T) {
	p := NewPreviewModal(testfixtures.SampleReview(), nil)

	for _, key := range []string{"enter", "y"} {
		cmd := p.Update(testfixtures.Key(key))
		require.NotNil(t, cmd, key)
		assert.IsType(t, PreviewConfirmedMsg{}, cmd(), key)
	}
	for _, key := range []string{"esc", "c", "n"} {
		cmd := p.Update(testfixtures.Key(key))
		require.NotNil(t, cmd, key)
		assert.IsType(t, PreviewDismissedMsg{}, cmd(), key)
	}
}

func TestPreviewModal_ButtonFocus(t *testing.T) {
	p := NewPreviewModal(testfixtures.SampleReview(), nil)
	assert.Equal(t, wizard.ButtonNext, p.buttons.FocusedButton(), "Confirm is focused first")

	assert.Nil(t, p.Update(testfixtures.Key("shift+tab")))
	assert.Equal(t, wizard.ButtonBack, p.buttons.FocusedButton())

	cmd := p.Update(testfixtures.Key("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, PreviewDismissedMsg{}, cmd(), "enter on Change variables dismisses")

	// Focus wraps around the two buttons.
	p.Update(testfixtures.Key("left"))
	assert.Equal(t, wizard.ButtonNext, p.buttons.FocusedButton())
	p.Update(testfixtures.Key("tab"))
	assert.Equal(t, wizard.ButtonBack, p.buttons.FocusedButton())
	p.Update(testfixtures.Key("right"))
	assert.Equal(t, wizard.ButtonNext, p.buttons.FocusedButton())

	cmd = p.Update(testfixtures.Key("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, PreviewConfirmedMsg{}, cmd())
}

func TestPreviewModal_View(t *testing.T) {
	p := NewPreviewModal(testfixtures.SampleReview(), nil)
	p.SetSize(modalContentWidth, 30)

	out := testfixtures.Plain(p.View())
	assert.Contains(t, out, "Architecture Preview")
	assert.Contains(t, out, "Confirm")
	assert.Contains(t, out, "Change variables")
	assert.Contains(t, out, sectionFunctional)
}
