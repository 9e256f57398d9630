package intakewizard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/tui/testfixtures"
	"github.com/debuggies/archintake/internal/tui/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStep_PasteIsSanitizedAndStored(t *testing.T) {
	form := intake.NewForm()
	step := NewStateStep(form)

	step.Update(tea.PasteMsg{Content: "\x1b[31mLegacy VM\x1b[0m\r\n"})

	assert.Equal(t, "Legacy VM", step.Value())
	assert.Equal(t, "Legacy VM", form.Value(intake.FieldActualState))
	assert.True(t, form.Touched(intake.FieldActualState))
}

func TestStateStep_SeededFromForm(t *testing.T) {
	form := intake.NewForm()
	require.NoError(t, form.SetField(intake.FieldActualState, "existing"))

	assert.Equal(t, "existing", NewStateStep(form).Value())
}

func TestStateStep_ErrorHiddenUntilBlur(t *testing.T) {
	form := intake.NewForm()
	step := NewStateStep(form)

	assert.NotContains(t, testfixtures.Plain(step.View()), "Current state is required")

	step.Blur()
	assert.Contains(t, testfixtures.Plain(step.View()), "Current state is required")
}

func TestStateStep_TabExits(t *testing.T) {
	step := NewStateStep(intake.NewForm())

	cmd := step.Update(testfixtures.Key("tab"))
	require.NotNil(t, cmd)
	assert.IsType(t, wizard.TabExitForwardMsg{}, cmd())
}

func TestChoiceStep_ChoiceWritesForm(t *testing.T) {
	form := intake.NewForm()
	step := NewChoiceStep(form, intake.Steps()[intake.StepCloud], intake.FieldCloud)

	cmd := step.Update(wizard.OptionChosenMsg{Value: "AWS"})
	require.NotNil(t, cmd)
	assert.IsType(t, StepDoneMsg{}, cmd())
	assert.True(t, form.Touched(intake.FieldCloud))

	out := testfixtures.Plain(step.View())
	assert.Contains(t, out, "Select the desired cloud provider.")
	assert.Contains(t, out, "Amazon Web Services")
	assert.Contains(t, out, "Suggest me one")
}

func TestReviewStep_Summary(t *testing.T) {
	session := intake.NewSession()
	require.NoError(t, session.Form.SetField(intake.FieldActualState, "Two VMs behind nginx"))
	step := NewReviewStep(session)

	out := testfixtures.Plain(step.View())
	for _, want := range []string{"Actual state", "Two VMs behind nginx", "Industry", "Finance", "Cloud provider", "Amazon Web Services (AWS)", "Environment", "Production"} {
		assert.Contains(t, out, want)
	}
}

func TestReviewStep_EditToggle(t *testing.T) {
	session := intake.NewSession()
	for session.Steps.Next() {
	}
	require.NoError(t, session.Form.SetField(intake.FieldActualState, "VM"))
	step := NewReviewStep(session)

	step.Update(testfixtures.Key("e"))
	require.True(t, step.Editing())
	assert.False(t, session.CanSubmit())
	assert.Contains(t, testfixtures.Plain(step.View()), "(editing)")

	// "s" types into the editor instead of submitting
	assert.Nil(t, step.requestSubmit())

	step.Update(testfixtures.Key("ctrl+s"))
	assert.False(t, step.Editing())
	assert.True(t, session.CanSubmit())

	cmd := step.Update(testfixtures.Key("s"))
	require.NotNil(t, cmd)
	assert.IsType(t, SubmitRequestedMsg{}, cmd())
}

func TestReviewStep_ExternalEditResult(t *testing.T) {
	session := intake.NewSession()
	step := NewReviewStep(session)

	step.Update(ActualStateEditedMsg{Content: "Edited in vim\n"})

	assert.Equal(t, "Edited in vim", session.Form.Value(intake.FieldActualState))
}

func TestReviewStep_RetryOnlyAfterError(t *testing.T) {
	session := intake.NewSession()
	for session.Steps.Next() {
	}
	require.NoError(t, session.Form.SetField(intake.FieldActualState, "VM"))
	step := NewReviewStep(session)

	assert.Nil(t, step.Update(testfixtures.Key("r")))
}

func TestRenderProgress(t *testing.T) {
	seq := intake.NewSequencer()
	seq.Next()

	out := testfixtures.Plain(renderProgress(seq, 200))
	assert.Contains(t, out, "✓ Current State")
	assert.Contains(t, out, "● Industry")
	assert.Contains(t, out, "○ Review")
	assert.Contains(t, out, "2/5")

	narrow := testfixtures.Plain(renderProgress(seq, 20))
	assert.Contains(t, narrow, "● Industry")
	assert.NotContains(t, narrow, "Current State")
}

func TestEditorFinished_RemovesTempFileOnEveryPath(t *testing.T) {
	writeTemp := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "archintake_state_test.md")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("editor succeeded", func(t *testing.T) {
		path := writeTemp(t, "Edited state\n")
		msg := editorFinished(path)(nil)
		assert.Equal(t, ActualStateEditedMsg{Content: "Edited state\n"}, msg)
		assert.NoFileExists(t, path)
	})

	t.Run("editor failed", func(t *testing.T) {
		path := writeTemp(t, "whatever")
		assert.Nil(t, editorFinished(path)(errors.New("exit status 1")))
		assert.NoFileExists(t, path)
	})

	t.Run("file unreadable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.md")
		assert.Nil(t, editorFinished(path)(nil))
		assert.NoFileExists(t, path)
	})
}
