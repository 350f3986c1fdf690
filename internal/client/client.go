// Package client is a small HTTP client for the event registry API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/types"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Details) > 0 {
		msg += " (" + strings.Join(e.Details, "; ") + ")"
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, msg)
}

// Client calls a running event registry server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// ListEvents returns the events matching f, ordered by date and start time.
func (c *Client) ListEvents(ctx context.Context, f event.Filter) ([]types.Event, error) {
	q := url.Values{}
	if f.Date != nil {
		q.Set("date", f.Date.String())
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}

	var events []types.Event
	if err := c.get(ctx, "/api/events", q, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns the event with the given id.
func (c *Client) GetEvent(ctx context.Context, id string) (types.Event, error) {
	var ev types.Event
	if err := c.get(ctx, "/api/events/"+url.PathEscape(id), nil, &ev); err != nil {
		return types.Event{}, err
	}
	return ev, nil
}

// ListRegistrations returns the registrations for an event in the order they
// were made.
func (c *Client) ListRegistrations(ctx context.Context, eventID string) ([]types.Registration, error) {
	var regs []types.Registration
	path := "/api/events/" + url.PathEscape(eventID) + "/registrations"
	if err := c.get(ctx, path, nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return apiErr
}
