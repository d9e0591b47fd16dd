// Package client is a Go client for the Taskify REST API. Each call maps
// one endpoint; list endpoints that page by cursor plug into Loader.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// Client issues authenticated calls against one team's API.
type Client struct {
	BaseURL string
	TeamID  string
	Token   string

	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
}

func New(baseURL, teamID string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		TeamID:     teamID,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError carries the status and the user-facing message for a failed
// call. Known statuses map to specific messages, the rest fall back to a
// generic one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func userMessage(status int) string {
	switch status {
	case http.StatusForbidden:
		return "you do not have permission to do that"
	case http.StatusNotFound:
		return "the requested item was not found"
	case http.StatusConflict:
		return "that already exists"
	default:
		return "something went wrong, please try again"
	}
}

type errEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (c *Client) url(path string, query url.Values) string {
	u := c.BaseURL + "/" + c.TeamID + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues the request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: userMessage(resp.StatusCode)}
	var env errEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error != "" {
		// keep the mapped message for the UI; the server detail is
		// appended for logs
		apiErr.Message = apiErr.Message + ": " + env.Error
	}
	return apiErr
}

// upload posts a single file as a multipart form and decodes the response.
func (c *Client) upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
