// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// MockClient stands in for the workflow client: it returns queued
// submissions, records every payload it receives and can block until
// released to simulate a slow endpoint.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    client := testfixtures.NewMockClient()
//	    client.Queue(testfixtures.SampleSubmission(), nil)
//
//	    // Use the client in your test...
//	    require.Len(t, client.Payloads(), 1)
//	}
package testfixtures

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/debuggies/archintake/internal/intake"
)

// ErrNoResponseQueued is returned by Submit when the queue is empty.
var ErrNoResponseQueued = errors.New("mock client: no response queued")

type mockResponse struct {
	sub intake.Submission
	err error
}

// MockClient is a mock workflow client. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	responses []mockResponse
	payloads  []intake.Payload

	// ProjectURL enables CreateProject when non-empty.
	ProjectURL string
	// ProjectBody is returned from CreateProject.
	ProjectBody json.RawMessage
	// ProjectError is returned from CreateProject.
	ProjectError error
	projects     []intake.ReviewModel

	// gate, when set, blocks Submit until it is closed.
	gate chan struct{}
}

// NewMockClient creates a client with no queued responses.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Queue appends a response for the next Submit call.
func (m *MockClient) Queue(sub intake.Submission, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{sub: sub, err: err})
}

// Hold makes Submit block until Release is called.
func (m *MockClient) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
}

// Release unblocks held Submit calls.
func (m *MockClient) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// Submit records the payload and returns the next queued response.
func (m *MockClient) Submit(ctx context.Context, p intake.Payload) (intake.Submission, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, p)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return intake.Submission{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return intake.Submission{}, ErrNoResponseQueued
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	return r.sub, r.err
}

// HasProjectEndpoint reports whether ProjectURL is set.
func (m *MockClient) HasProjectEndpoint() bool {
	return m.ProjectURL != ""
}

// CreateProject records the review and returns ProjectBody or ProjectError.
func (m *MockClient) CreateProject(_ context.Context, review intake.ReviewModel) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = append(m.projects, review)
	if m.ProjectError != nil {
		return nil, m.ProjectError
	}
	return m.ProjectBody, nil
}

// Payloads returns a copy of every payload received.
func (m *MockClient) Payloads() []intake.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]intake.Payload, len(m.payloads))
	copy(out, m.payloads)
	return out
}

// Projects returns a copy of every review sent to CreateProject.
func (m *MockClient) Projects() []intake.ReviewModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]intake.ReviewModel, len(m.projects))
	copy(out, m.projects)
	return out
}
