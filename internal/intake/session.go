package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/debuggies/archintake/internal/logger"
)

var (
	// ErrInvalid is returned when submission is attempted with field errors.
	// The errors themselves are recorded on the form.
	ErrInvalid = errors.New("form has validation errors")
	// ErrSubmitInFlight is returned when a submission is already pending.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrEditing is returned when submission is attempted during inline edit.
	ErrEditing = errors.New("finish editing before submitting")
	// ErrNotOnReview is returned when submission is attempted before the
	// terminal step.
	ErrNotOnReview = errors.New("submission is only allowed from the review step")
	// ErrStaleResult is returned when a result arrives for a session that
	// was reset after the request was sent.
	ErrStaleResult = errors.New("result belongs to a discarded session")
)

// Submitter sends one payload to the remote workflow.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (Submission, error)
}

// Session is the single owner of all mutable wizard state for one run of
// the wizard: the form, the step position, the busy and modal flags, the
// conversation token and the latest review.
type Session struct {
	Form  *Form
	Steps *Sequencer

	submitting     bool
	reviewOpen     bool
	editing        bool
	conversationID string
	review         *ReviewModel
	previous       *ReviewModel
	lastErr        error

	// generation increments on Reset so results of requests sent before
	// the reset can be recognised and dropped.
	generation uint64
}

// NewSession creates a session with default values on the first step.
func NewSession() *Session {
	return &Session{
		Form:  NewForm(),
		Steps: NewSequencer(),
	}
}

// Next advances one step.
func (s *Session) Next() bool {
	if s.submitting {
		return false
	}
	moved := s.Steps.Next()
	if moved {
		logger.Debug("Advanced to step %s", s.Steps.Current().ID)
	}
	return moved
}

// Back moves one step back. Leaving the review step ends inline editing.
func (s *Session) Back() bool {
	if s.submitting {
		return false
	}
	moved := s.Steps.Back()
	if moved {
		s.editing = false
		logger.Debug("Moved back to step %s", s.Steps.Current().ID)
	}
	return moved
}

// ToggleEditing switches inline editing of the actual state on or off and
// returns the new mode.
func (s *Session) ToggleEditing() bool {
	s.editing = !s.editing
	if !s.editing {
		_ = s.Form.HandleBlur(FieldActualState)
	}
	return s.editing
}

// CanSubmit reports whether the submit action is enabled.
func (s *Session) CanSubmit() bool {
	return s.Steps.IsTerminal() && !s.editing && !s.submitting
}

// BeginSubmit validates the form and, if valid, marks the session busy and
// returns the payload to send with the generation it belongs to. Every
// successful BeginSubmit must be followed by CompleteSubmit.
func (s *Session) BeginSubmit() (Payload, uint64, error) {
	switch {
	case s.submitting:
		return Payload{}, 0, ErrSubmitInFlight
	case !s.Steps.IsTerminal():
		return Payload{}, 0, ErrNotOnReview
	case s.editing:
		return Payload{}, 0, ErrEditing
	}

	if errs := s.Form.Validate(); len(errs) > 0 {
		logger.Debug("Submission blocked by %d validation error(s)", len(errs))
		return Payload{}, 0, ErrInvalid
	}

	s.submitting = true
	s.lastErr = nil
	return Payload{FormValues: s.Form.Values(), ChatID: s.conversationID}, s.generation, nil
}

// CompleteSubmit applies the outcome of a request started by BeginSubmit.
// The busy flag is released whatever the outcome.
func (s *Session) CompleteSubmit(generation uint64, sub Submission, err error) error {
	if generation != s.generation {
		logger.Debug("Dropping result for generation %d (current %d)", generation, s.generation)
		return ErrStaleResult
	}
	s.submitting = false

	if err != nil {
		logger.Error("Submission failed: %v", err)
		s.lastErr = err
		return err
	}

	if s.review != nil {
		prev := *s.review
		s.previous = &prev
	}
	review := sub.Review
	s.review = &review
	if sub.ConversationID != "" {
		s.conversationID = sub.ConversationID
	}
	s.reviewOpen = true
	logger.Info("Submission succeeded (conversation %q)", s.conversationID)
	return nil
}

// Submit runs a full submission synchronously against the given submitter.
func (s *Session) Submit(ctx context.Context, submitter Submitter) error {
	payload, gen, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	sub, err := submitter.Submit(ctx, payload)
	if cerr := s.CompleteSubmit(gen, sub, err); cerr != nil {
		return fmt.Errorf("submit: %w", cerr)
	}
	return nil
}

// Submitting reports whether a request is in flight.
func (s *Session) Submitting() bool { return s.submitting }

// Editing reports whether inline editing is active.
func (s *Session) Editing() bool { return s.editing }

// ReviewOpen reports whether the review modal is showing.
func (s *Session) ReviewOpen() bool { return s.reviewOpen }

// ConversationID returns the token carried into the next submission.
func (s *Session) ConversationID() string { return s.conversationID }

// SetConversationID seeds the conversation token, e.g. from a flag.
func (s *Session) SetConversationID(id string) { s.conversationID = id }

// Review returns the latest review, if any.
func (s *Session) Review() (ReviewModel, bool) {
	if s.review == nil {
		return ReviewModel{}, false
	}
	return *s.review, true
}

// PreviousReview returns the review the latest one replaced, if any.
func (s *Session) PreviousReview() (ReviewModel, bool) {
	if s.previous == nil {
		return ReviewModel{}, false
	}
	return *s.previous, true
}

// LastError returns the error of the most recent failed submission.
func (s *Session) LastError() error { return s.lastErr }

// ClearError dismisses the last submission error.
func (s *Session) ClearError() { s.lastErr = nil }

// CloseReview hides the review modal without side effects.
func (s *Session) CloseReview() { s.reviewOpen = false }

// ConfirmReview hides the review modal and returns the review to forward.
func (s *Session) ConfirmReview() (ReviewModel, bool) {
	s.reviewOpen = false
	return s.Review()
}

// Generation identifies the current incarnation of the session.
func (s *Session) Generation() uint64 { return s.generation }

// Reset starts the wizard over with default values. The conversation
// token survives so the remote service keeps its context. Any request in
// flight is orphaned: its result will be rejected as stale.
func (s *Session) Reset() {
	s.Form = NewForm()
	s.Steps = NewSequencer()
	s.submitting = false
	s.reviewOpen = false
	s.editing = false
	s.review = nil
	s.previous = nil
	s.lastErr = nil
	s.generation++
}
