// Package client is the submission transport: it carries a validated form
// payload to the report server and interprets the outcome. A single Client
// allows one submission in flight at a time, mirroring the form's disabled
// submit control.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/itdept/dutyreport/internal/dto"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not completed. No request is issued.
var ErrSubmissionInFlight = fmt.Errorf("a submission is already in flight")

// ServerError carries the server's rejection of a submission. The form stays
// populated so the user can retry.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected submission (%d): %s", e.StatusCode, e.Message)
}

// Client posts submissions to a report server.
type Client struct {
	baseURL string
	httpc   *http.Client
	busy    atomic.Bool
}

// New builds a transport for the given base URL. The underlying HTTP client
// has no timeout: the busy state is only dismissed by completion of the call,
// as on the form.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{})
}

// NewWithHTTPClient allows injecting the HTTP client, for tests.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// Submit sends one payload to POST /save-response. While a call is in flight
// further calls fail fast with ErrSubmissionInFlight. Network failures and
// non-2xx statuses leave the payload untouched for retry: the former come
// back wrapped, the latter as a *ServerError with the server's message.
func (c *Client) Submit(ctx context.Context, payload *dto.SaveResponseRequest) (*dto.SaveResponseResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-response", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := &ServerError{StatusCode: resp.StatusCode, Message: "submission failed"}
		var errBody dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			serverErr.Message = errBody.Message
		}
		return nil, serverErr
	}

	var result dto.SaveResponseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// Busy reports whether a submission is currently in flight.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

// ReportURL composes the absolute download URL for a generated report. File
// names contain spaces and punctuation, so the name is percent-encoded.
func (c *Client) ReportURL(fileName string) string {
	return c.baseURL + "/pdfs/" + url.PathEscape(fileName)
}
