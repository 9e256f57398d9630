// Package intake holds the wizard's domain state: the form values collected
// from the user, their validation, the ordered steps, and the session that
// ties them to a remote submission.
package intake

import "strings"

// Field names a form field by its wire name.
type Field string

const (
	FieldActualState Field = "actual_state"
	FieldEnvironment Field = "environment"
	FieldIndustry    Field = "industry"
	FieldCloud       Field = "cloud"
)

// Fields lists every form field in display order.
func Fields() []Field {
	return []Field{FieldActualState, FieldIndustry, FieldCloud, FieldEnvironment}
}

// Default values applied to a fresh form.
const (
	DefaultEnvironment = "Production"
	DefaultIndustry    = "Finance"
	DefaultCloud       = "AWS"
)

// FormValues is the user's answers. The JSON form is the request body sent
// to the workflow endpoint.
type FormValues struct {
	ActualState string `json:"actual_state" yaml:"actual_state" validate:"notblank"`
	Environment string `json:"environment" yaml:"environment" validate:"notblank"`
	Industry    string `json:"industry" yaml:"industry" validate:"notblank"`
	Cloud       string `json:"cloud" yaml:"cloud"`
}

// DefaultValues returns the values a new session starts with.
func DefaultValues() FormValues {
	return FormValues{
		Environment: DefaultEnvironment,
		Industry:    DefaultIndustry,
		Cloud:       DefaultCloud,
	}
}

// Get returns the value of the named field.
func (v FormValues) Get(f Field) (string, bool) {
	switch f {
	case FieldActualState:
		return v.ActualState, true
	case FieldEnvironment:
		return v.Environment, true
	case FieldIndustry:
		return v.Industry, true
	case FieldCloud:
		return v.Cloud, true
	}
	return "", false
}

// with returns a copy of v with the named field replaced.
func (v FormValues) with(f Field, value string) (FormValues, bool) {
	switch f {
	case FieldActualState:
		v.ActualState = value
	case FieldEnvironment:
		v.Environment = value
	case FieldIndustry:
		v.Industry = value
	case FieldCloud:
		v.Cloud = value
	default:
		return v, false
	}
	return v, true
}

// Payload is the body of one submission: the form values plus the
// conversation token returned by an earlier response, if any.
type Payload struct {
	FormValues
	ChatID string `json:"chatId,omitempty"`
}

// ReviewModel is the normalized set of artifacts returned by the workflow.
type ReviewModel struct {
	FunctionalDiagram     string `json:"functionalDiagram" yaml:"functional_diagram"`
	InfrastructureDiagram string `json:"infrastructureDiagram" yaml:"infrastructure_diagram"`
	Rationale             string `json:"rationale" yaml:"rationale"`
	GeneratedCode         string `json:"terraform" yaml:"terraform"`
	DecisionRecord        string `json:"architecturalDecisionRecord" yaml:"decision_record"`
}

// IsEmpty reports whether no artifact carries any content.
func (r ReviewModel) IsEmpty() bool {
	return strings.TrimSpace(r.FunctionalDiagram+r.InfrastructureDiagram+r.Rationale+r.GeneratedCode+r.DecisionRecord) == ""
}

// Submission is a successful workflow response.
type Submission struct {
	Review         ReviewModel
	ConversationID string // empty when the response carried none
}
