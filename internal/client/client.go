// Package client talks to the translator API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"horse.fit/translator/internal/translation"
)

// Client is an HTTP client of the translator API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid translator api url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Languages fetches GET /languages.
func (c *Client) Languages(ctx context.Context) ([]translation.Language, error) {
	var langs []translation.Language
	if err := c.do(ctx, http.MethodGet, "/languages", nil, &langs); err != nil {
		return nil, err
	}
	if len(langs) == 0 {
		return nil, &APIError{Status: http.StatusOK, Kind: "malformed_response", Detail: "The server returned no languages"}
	}
	return langs, nil
}

// Translate posts one request to POST /translate.
func (c *Client) Translate(ctx context.Context, req translation.Request) (*translation.Result, error) {
	var result translation.Result
	if err := c.do(ctx, http.MethodPost, "/translate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &UnreachableError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnreachableError{URL: c.baseURL, Err: fmt.Errorf("read %s response: %w", path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Status: resp.StatusCode, Kind: "malformed_response", Detail: "The server returned an unreadable response"}
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var payload struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Kind = payload.Error
		apiErr.Detail = strings.TrimSpace(payload.Detail)
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(status)
	}
	return apiErr
}

// APIError is an error response of the translator API.
type APIError struct {
	Status int
	Kind   string
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("translator api status %d (%s): %s", e.Status, e.Kind, e.Detail)
}

// ClientFault reports a 4xx response.
func (e *APIError) ClientFault() bool {
	return e.Status >= 400 && e.Status < 500
}

// UserMessage is the text shown in the output field.
func (e *APIError) UserMessage() string {
	if e.ClientFault() {
		return e.Detail
	}
	return "Sorry, the translation service could not translate this right now. Edit the text to try again."
}

// UnreachableError means the API could not be reached at all.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("translator api unreachable at %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

func (e *UnreachableError) UserMessage() string {
	return "Could not reach the translation server. Check that it is running, then edit the text to try again."
}

// IsUnreachable reports whether err is a NetworkUnreachable failure.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}
