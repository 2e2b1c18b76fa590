package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/download"
)

// Alerter is the host environment's blocking alert primitive. Download
// failures go here; they happen outside the normal page flow and have no
// inline error surface.
type Alerter interface {
	Alert(message string)
}

// Client wraps the backend HTTP API: bearer-token injection, uniform error
// normalization and binary-download handling. It never retries and never
// caches.
type Client struct {
	baseURL string
	http    *http.Client
	saver   download.FileSaver
	alerter Alerter
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, saver download.FileSaver, alerter Alerter, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		saver:   saver,
		alerter: alerter,
		logger:  logger,
	}
}

// do issues one request. A bearer header is attached when token is non-empty.
// On a non-success status the JSON error body is parsed for a message; on
// success the body is decoded into out when the response is JSON and out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("API request failed", "method", method, "path", path, "error", err)
		return statusError(0, "Could not reach the server. Please try again.")
	}
	defer resp.Body.Close()

	c.logger.Debug("API request", "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.normalizeError(resp)
	}

	if out == nil {
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fetchBinary issues an authenticated GET and returns the raw body.
func (c *Client) fetchBinary(ctx context.Context, path, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, statusError(0, "Could not reach the server. Please try again.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.normalizeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// Download performs an authenticated binary fetch and hands the result to
// the save-as primitive. Failures surface through the blocking alerter and
// are otherwise swallowed; a broken export never takes down the rest of the
// app.
func (c *Client) Download(ctx context.Context, path, suggestedFilename, token string) {
	data, err := c.fetchBinary(ctx, path, token)
	if err != nil {
		c.alerter.Alert("Export failed: " + err.Error())
		return
	}

	location, err := c.saver.Save(suggestedFilename, data)
	if err != nil {
		c.alerter.Alert("Export failed: " + err.Error())
		return
	}
	c.logger.Info("Export saved", "file", location, "bytes", len(data))
}

// normalizeError turns a non-success response into an *Error. The server's
// error body is `{"error": "..."}`; anything unparseable falls back to the
// generic status message.
func (c *Client) normalizeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return statusError(resp.StatusCode, body.Error)
		}
	}
	return statusError(resp.StatusCode, "")
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
