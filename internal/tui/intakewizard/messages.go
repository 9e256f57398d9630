package intakewizard

import (
	"encoding/json"

	"github.com/debuggies/archintake/internal/intake"
)

// StepDoneMsg is sent by a step that wants the wizard to advance.
type StepDoneMsg struct{}

// SubmitRequestedMsg is sent by the review step to start a submission.
type SubmitRequestedMsg struct{}

// SubmissionResultMsg carries the outcome of a workflow request back into
// the update loop. Generation ties it to the session that sent it.
type SubmissionResultMsg struct {
	Generation uint64
	Submission intake.Submission
	Err        error
}

// ActualStateEditedMsg is sent when the external editor returns.
type ActualStateEditedMsg struct {
	Content string
}

// PreviewConfirmedMsg is sent when the user accepts the generated artifacts.
type PreviewConfirmedMsg struct{}

// PreviewDismissedMsg is sent when the user goes back to change variables.
type PreviewDismissedMsg struct{}

// ProjectCreatedMsg carries the project endpoint's response.
type ProjectCreatedMsg struct {
	Body json.RawMessage
	Err  error
}

// ExportedMsg reports where artifacts were written.
type ExportedMsg struct {
	Dir string
	Err error
}

// RestartWizardMsg is sent when the user confirms starting over.
type RestartWizardMsg struct{}
