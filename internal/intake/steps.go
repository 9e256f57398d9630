package intake

// StepDescriptor describes one page of the wizard.
type StepDescriptor struct {
	ID          string
	Label       string
	Description string
	Fields      []Field // fields edited on this step; empty for review
}

// Step indices, in traversal order.
const (
	StepCurrentState = iota
	StepIndustry
	StepCloud
	StepEnvironment
	StepReview
)

var steps = []StepDescriptor{
	{
		ID:          "step1",
		Label:       "Current State",
		Description: "Fill out all your information related to the current state of your application.",
		Fields:      []Field{FieldActualState},
	},
	{
		ID:          "step2",
		Label:       "Industry",
		Description: "Select the industry you are in.",
		Fields:      []Field{FieldIndustry},
	},
	{
		ID:          "step3",
		Label:       "Cloud Provider",
		Description: "Select the desired cloud provider.",
		Fields:      []Field{FieldCloud},
	},
	{
		ID:          "step4",
		Label:       "Environment",
		Description: "Select how many environments you want to deploy to.",
		Fields:      []Field{FieldEnvironment},
	},
	{
		ID:          "step5",
		Label:       "Review",
		Description: "Review your submission and submit it.",
	},
}

// Steps returns a copy of the step list.
func Steps() []StepDescriptor {
	out := make([]StepDescriptor, len(steps))
	copy(out, steps)
	return out
}

// Sequencer tracks the current position in the step list. The position
// only moves one step at a time and stays within [0, len-1].
type Sequencer struct {
	steps []StepDescriptor
	index int
}

// NewSequencer creates a sequencer positioned on the first step.
func NewSequencer() *Sequencer {
	return &Sequencer{steps: steps}
}

// Next advances one step. It returns false at the terminal step.
func (s *Sequencer) Next() bool {
	if s.IsTerminal() {
		return false
	}
	s.index++
	return true
}

// Back moves one step back. It returns false on the first step.
func (s *Sequencer) Back() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Index returns the current position.
func (s *Sequencer) Index() int { return s.index }

// Len returns the number of steps.
func (s *Sequencer) Len() int { return len(s.steps) }

// Current returns the descriptor of the current step.
func (s *Sequencer) Current() StepDescriptor { return s.steps[s.index] }

// IsTerminal reports whether the current step is the last one.
func (s *Sequencer) IsTerminal() bool { return s.index == len(s.steps)-1 }

// Progress returns how far through the wizard the user is, from 0 to 1.
func (s *Sequencer) Progress() float64 {
	if len(s.steps) < 2 {
		return 1
	}
	return float64(s.index) / float64(len(s.steps)-1)
}
