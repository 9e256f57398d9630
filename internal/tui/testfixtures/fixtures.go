package testfixtures

import "github.com/debuggies/archintake/internal/intake"

// SampleActualState is a typical free-text answer for the first step.
const SampleActualState = "Migrate monolith to microservices"

// SampleReview returns a review with every artifact filled in.
func SampleReview() intake.ReviewModel {
	return intake.ReviewModel{
		FunctionalDiagram:     "graph TD\n  User --> API\n  API --> Orders",
		InfrastructureDiagram: "graph LR\n  ALB --> ECS\n  ECS --> RDS",
		Rationale:             "Use AWS ECS",
		GeneratedCode: `resource "aws_ecs_cluster" "main" {
  name = "orders"
}
`,
		DecisionRecord: "# ADR-001\n\nWe adopt **ECS Fargate** for the order services.",
	}
}

// RevisedReview returns a review whose Terraform differs from SampleReview.
func RevisedReview() intake.ReviewModel {
	r := SampleReview()
	r.Rationale = "Use AWS ECS with Fargate Spot"
	r.GeneratedCode = `resource "aws_ecs_cluster" "main" {
  name = "orders-prod"
}
`
	return r
}

// SampleSubmission wraps SampleReview with a conversation id.
func SampleSubmission(conversationID string) intake.Submission {
	return intake.Submission{Review: SampleReview(), ConversationID: conversationID}
}
