package guestbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"guestbook/internal/models"
	"guestbook/internal/observability"
)

// MessageClient talks to the guestbook backend.
type MessageClient interface {
	List(ctx context.Context) ([]Message, error)
	Create(ctx context.Context, req models.CreateMessageRequest) error
}

// Client is the HTTP implementation of MessageClient. The endpoint is fixed
// for the lifetime of the client.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a Client for endpoint. A nil httpClient uses http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the list/create URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List fetches all messages in server order. Anything but a 200 carrying a
// JSON array is an ErrFetch.
func (c *Client) List(ctx context.Context) ([]Message, error) {
	ctx, span := otel.Tracer("guestbook/client").Start(ctx, "guestbook.list")
	defer span.End()

	msgs, err := c.list(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.IncUpstreamCall("list", "error")
		return nil, err
	}
	span.SetAttributes(attribute.Int("guestbook.messages", len(msgs)))
	observability.IncUpstreamCall("list", "ok")
	return msgs, nil
}

func (c *Client) list(ctx context.Context) ([]Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: response is not a JSON array", ErrFetch)
	}

	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrFetch, err)
	}
	return msgs, nil
}

// Create posts a new message. Any 2xx is success and the body is ignored.
func (c *Client) Create(ctx context.Context, msg models.CreateMessageRequest) error {
	ctx, span := otel.Tracer("guestbook/client").Start(ctx, "guestbook.create")
	defer span.End()

	if err := c.create(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.IncUpstreamCall("create", "error")
		return err
	}
	observability.IncUpstreamCall("create", "ok")
	return nil
}

func (c *Client) create(ctx context.Context, msg models.CreateMessageRequest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encode body: %w", ErrSubmit, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrSubmit, resp.StatusCode)
	}
	return nil
}
