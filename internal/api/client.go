// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the assistant backend.
//
// The backend is a local companion server, so there is no retry logic:
// a failed request surfaces immediately as an inline error bubble.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single API request. Chat turns can block on
	// the LLM, so this is generous.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// Response size limit prevents memory exhaustion on a misbehaving server.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Shared HTTP client with connection pooling for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common backend failures.
var (
	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("assistant backend unavailable")

	// ErrBadRequest indicates the backend rejected the request payload.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates the backend failed internally.
	ErrServerError = errors.New("server error")
)

// BackendError carries the status and message of a non-2xx reply.
type BackendError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// Unwrap maps the status onto a sentinel for errors.Is checks.
func (e *BackendError) Unwrap() error {
	switch {
	case e.Status >= 500:
		return ErrServerError
	case e.Status >= 400:
		return ErrBadRequest
	default:
		return nil
	}
}

// Client talks to the assistant backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// NewClientWithHTTP creates a client with a custom http.Client, used by
// tests to control timeouts.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MapURL returns the absolute map document URL with a cache-busting
// timestamp, forcing a fresh load of the document after state changes.
func (c *Client) MapURL(path string) string {
	ts := time.Now().UnixMilli()
	return fmt.Sprintf("%s%s?ts=%d", c.baseURL, path, ts)
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Chat sends one chat turn and returns the backend's reply.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "/api/chat", ChatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectRoute pushes route geometry to the shared map document.
func (c *Client) SelectRoute(ctx context.Context, req SelectRouteRequest) (*SelectRouteResponse, error) {
	var out SelectRouteResponse
	if err := c.postJSON(ctx, "/api/select_route", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearRoute resets the shared map document to its empty state.
func (c *Client) ClearRoute(ctx context.Context) (*SelectRouteResponse, error) {
	var out SelectRouteResponse
	if err := c.postJSON(ctx, "/api/clear_route", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeActivity asks the backend to analyze a route, optionally with a
// rendered map snapshot attached.
func (c *Client) AnalyzeActivity(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.postJSON(ctx, "/api/analyze_activity", req, &out); err != nil {
		return nil, err
	}
	// A reply without the success flag is a failure even when the handler
	// produced no message.
	if !out.OK {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrServerError, out.Error)
		}
		return nil, fmt.Errorf("%w: failed to analyze", ErrServerError)
	}
	return &out, nil
}

// Transcribe uploads recorded audio and returns the transcription text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to buffer audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out TranscribeResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrServerError, out.Error)
	}
	return strings.TrimSpace(out.Text), nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("%w: %v", ErrBackendUnavailable, urlErr.Err)
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		be := &BackendError{Status: resp.StatusCode}
		// Error replies still carry a JSON body when the handler produced
		// one; pull the message out for the inline error bubble.
		var detail struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &detail) == nil {
			be.Message = detail.Error
		}
		return be
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
