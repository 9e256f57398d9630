package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/debuggies/archintake/internal/intake"
)

// ErrUnrecognizedResponse is returned when a response body matches none of
// the known shapes. No partial review is produced in that case.
var ErrUnrecognizedResponse = errors.New("unrecognized workflow response")

// responseShape identifies which of the known body layouts was received.
type responseShape int

const (
	shapeUnknown  responseShape = iota
	shapeEnvelope               // {"data": {...}}
	shapeBatch                  // [{"json": {...}, "chatId": "..."}]
)

func (s responseShape) String() string {
	switch s {
	case shapeEnvelope:
		return "envelope"
	case shapeBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// envelopeResponse is the {"data": {...}} layout.
type envelopeResponse struct {
	Data *struct {
		Diagrams *struct {
			Functional     string `json:"functional"`
			Infrastructure string `json:"infrastructure"`
		} `json:"diagrams"`
		Rationale                   string `json:"rationale"`
		Terraform                   string `json:"terraform"`
		ArchitecturalDecisionRecord string `json:"architecturalDecisionRecord"`
	} `json:"data"`
}

// batchItem is one element of the array layout.
type batchItem struct {
	JSON *struct {
		Mermaid1                           string `json:"mermaid_1"`
		Mermaid2                           string `json:"mermaid_2"`
		MarkdownRationale                  string `json:"markdown_rationale"`
		TerraformTemplate                  string `json:"terraform_template"`
		MarkdownArchitecturalDecisionRecord string `json:"markdown_architectural_decision_record"`
	} `json:"json"`
	ChatID string `json:"chatId"`
}

// decoded is the result of resolving a body to one shape.
type decoded struct {
	shape      responseShape
	submission intake.Submission
}

// probeShape looks at the first significant byte of the body.
func probeShape(body []byte) responseShape {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return shapeUnknown
	}
	switch trimmed[0] {
	case '{':
		return shapeEnvelope
	case '[':
		return shapeBatch
	}
	return shapeUnknown
}

// decodeResponse resolves a body into a submission.
func decodeResponse(body []byte) (decoded, error) {
	switch shape := probeShape(body); shape {
	case shapeEnvelope:
		var env envelopeResponse
		if err := json.Unmarshal(body, &env); err != nil {
			return decoded{}, fmt.Errorf("%w: %v", ErrUnrecognizedResponse, err)
		}
		if env.Data == nil {
			return decoded{}, fmt.Errorf("%w: object without \"data\"", ErrUnrecognizedResponse)
		}
		review := intake.ReviewModel{
			Rationale:      env.Data.Rationale,
			GeneratedCode:  env.Data.Terraform,
			DecisionRecord: env.Data.ArchitecturalDecisionRecord,
		}
		if env.Data.Diagrams != nil {
			review.FunctionalDiagram = env.Data.Diagrams.Functional
			review.InfrastructureDiagram = env.Data.Diagrams.Infrastructure
		}
		return decoded{shape: shape, submission: intake.Submission{Review: review}}, nil

	case shapeBatch:
		var items []batchItem
		if err := json.Unmarshal(body, &items); err != nil {
			return decoded{}, fmt.Errorf("%w: %v", ErrUnrecognizedResponse, err)
		}
		if len(items) == 0 {
			return decoded{}, fmt.Errorf("%w: empty array", ErrUnrecognizedResponse)
		}
		first := items[0]
		if first.JSON == nil {
			return decoded{}, fmt.Errorf("%w: first element without \"json\"", ErrUnrecognizedResponse)
		}
		return decoded{
			shape: shape,
			submission: intake.Submission{
				Review: intake.ReviewModel{
					FunctionalDiagram:     first.JSON.Mermaid1,
					InfrastructureDiagram: first.JSON.Mermaid2,
					Rationale:             first.JSON.MarkdownRationale,
					GeneratedCode:         first.JSON.TerraformTemplate,
					DecisionRecord:        first.JSON.MarkdownArchitecturalDecisionRecord,
				},
				ConversationID: first.ChatID,
			},
		}, nil
	}
	return decoded{}, fmt.Errorf("%w: body is not a JSON object or array", ErrUnrecognizedResponse)
}
