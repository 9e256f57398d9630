// Package workflow talks to the remote workflow service that turns intake
// answers into architecture artifacts.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/debuggies/archintake/internal/workflow"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 16 << 20

	defaultTimeout = 60 * time.Second
)

// ErrNoProjectURL is returned by CreateProject when no endpoint is set.
var ErrNoProjectURL = errors.New("project endpoint not configured")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("workflow returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("workflow returned status %d: %s", e.StatusCode, e.Body)
}

// Options configures a Client.
type Options struct {
	EndpointURL string
	ProjectURL  string        // optional downstream project-creation endpoint
	Timeout     time.Duration // zero means 60s
	HTTPClient  *http.Client  // overrides Timeout when set
}

// Client submits intake payloads and normalizes the responses.
type Client struct {
	endpointURL string
	projectURL  string
	httpClient  *http.Client
	tracer      trace.Tracer
}

// NewClient creates a client for the given endpoints.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpointURL: opts.EndpointURL,
		projectURL:  opts.ProjectURL,
		httpClient:  hc,
		tracer:      otel.Tracer(tracerName),
	}
}

// HasProjectEndpoint reports whether CreateProject can be used.
func (c *Client) HasProjectEndpoint() bool { return c.projectURL != "" }

// Submit posts the payload and returns the normalized review.
func (c *Client) Submit(ctx context.Context, p intake.Payload) (intake.Submission, error) {
	ctx, span := c.tracer.Start(ctx, "workflow.submit")
	defer span.End()

	span.SetAttributes(
		attribute.String("intake.industry", p.Industry),
		attribute.String("intake.cloud", p.Cloud),
		attribute.Bool("intake.has_chat_id", p.ChatID != ""),
	)

	body, err := c.post(ctx, span, c.endpointURL, p)
	if err != nil {
		return intake.Submission{}, fail(span, err)
	}

	result, err := decodeResponse(body)
	if err != nil {
		logger.Error("Unrecognized workflow response (%d bytes): %v", len(body), err)
		return intake.Submission{}, fail(span, err)
	}
	span.SetAttributes(attribute.String("workflow.response_shape", result.shape.String()))
	logger.Debug("Decoded %s response", result.shape)

	return result.submission, nil
}

// CreateProject forwards a confirmed review to the project-creation
// endpoint and returns the raw response body.
func (c *Client) CreateProject(ctx context.Context, review intake.ReviewModel) (json.RawMessage, error) {
	if c.projectURL == "" {
		return nil, ErrNoProjectURL
	}

	ctx, span := c.tracer.Start(ctx, "workflow.create_project")
	defer span.End()

	body, err := c.post(ctx, span, c.projectURL, review)
	if err != nil {
		return nil, fail(span, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		return nil, fail(span, fmt.Errorf("project endpoint returned invalid JSON"))
	}
	return json.RawMessage(body), nil
}

// post sends v as JSON and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, span trace.Span, url string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.full", url),
		attribute.String("request.id", requestID),
	)

	logger.Debug("POST %s (request %s, %d bytes)", url, requestID, len(data))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach workflow: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	logger.Debug("Request %s answered %d in %s", requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
