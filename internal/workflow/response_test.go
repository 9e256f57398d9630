package workflow

import (
	"testing"

	"github.com/debuggies/archintake/internal/intake"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeShape(t *testing.T) {
	tests := []struct {
		body string
		want responseShape
	}{
		{`{"data":{}}`, shapeEnvelope},
		{"  \n\t[{}]", shapeBatch},
		{``, shapeUnknown},
		{`"text"`, shapeUnknown},
		{`<html>`, shapeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, probeShape([]byte(tt.body)), "body %q", tt.body)
	}
}

func TestDecodeResponse_Envelope(t *testing.T) {
	body := `{
		"data": {
			"diagrams": {"functional": "graph TD; A-->B", "infrastructure": "graph LR; ALB-->ECS"},
			"rationale": "Use AWS ECS",
			"terraform": "resource \"aws_ecs_cluster\" \"main\" {}",
			"architecturalDecisionRecord": "# ADR-001\nUse ECS."
		}
	}`

	got, err := decodeResponse([]byte(body))
	require.NoError(t, err)

	want := intake.Submission{Review: intake.ReviewModel{
		FunctionalDiagram:     "graph TD; A-->B",
		InfrastructureDiagram: "graph LR; ALB-->ECS",
		Rationale:             "Use AWS ECS",
		GeneratedCode:         `resource "aws_ecs_cluster" "main" {}`,
		DecisionRecord:        "# ADR-001\nUse ECS.",
	}}
	assert.Equal(t, shapeEnvelope, got.shape)
	if diff := cmp.Diff(want, got.submission); diff != "" {
		t.Errorf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResponse_EnvelopeWithoutDiagrams(t *testing.T) {
	got, err := decodeResponse([]byte(`{"data":{"rationale":"only text"}}`))
	require.NoError(t, err)

	assert.Equal(t, "only text", got.submission.Review.Rationale)
	assert.Empty(t, got.submission.Review.FunctionalDiagram)
}

func TestDecodeResponse_Batch(t *testing.T) {
	body := `[{
		"json": {
			"mermaid_1": "flowchart TD; U-->API",
			"mermaid_2": "flowchart LR; VPC-->RDS",
			"markdown_rationale": "## Why\nManaged services.",
			"terraform_template": "provider \"aws\" {}",
			"markdown_architectural_decision_record": "ADR body"
		},
		"chatId": "b9c1"
	}, {"json": {"mermaid_1": "ignored"}}]`

	got, err := decodeResponse([]byte(body))
	require.NoError(t, err)

	want := intake.Submission{
		Review: intake.ReviewModel{
			FunctionalDiagram:     "flowchart TD; U-->API",
			InfrastructureDiagram: "flowchart LR; VPC-->RDS",
			Rationale:             "## Why\nManaged services.",
			GeneratedCode:         `provider "aws" {}`,
			DecisionRecord:        "ADR body",
		},
		ConversationID: "b9c1",
	}
	assert.Equal(t, shapeBatch, got.shape)
	if diff := cmp.Diff(want, got.submission); diff != "" {
		t.Errorf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResponse_BatchWithoutChatID(t *testing.T) {
	got, err := decodeResponse([]byte(`[{"json":{"markdown_rationale":"r"}}]`))
	require.NoError(t, err)
	assert.Empty(t, got.submission.ConversationID)
}

func TestDecodeResponse_Unrecognized(t *testing.T) {
	bodies := map[string]string{
		"empty body":           ``,
		"object without data":  `{"result":"ok"}`,
		"null data":            `{"data":null}`,
		"empty array":          `[]`,
		"array without json":   `[{"chatId":"x"}]`,
		"malformed object":     `{"data": {`,
		"wrong field type":     `{"data":{"rationale":42}}`,
		"plain text":           `Workflow was started`,
		"array of non-objects": `["a","b"]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			got, err := decodeResponse([]byte(body))
			assert.ErrorIs(t, err, ErrUnrecognizedResponse)
			assert.True(t, got.submission.Review.IsEmpty(), "no partial review on failure")
		})
	}
}
