// Package notion implements the document-store repositories over the Notion
// REST API: query-by-filter, create-page and update-page, plus the property
// codecs the repositories share.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
	requestTimeout = 30 * time.Second

	// errorBodyLimit bounds how much of a failed response body reaches the
	// logs and the returned error.
	errorBodyLimit = 300
)

// APIError is a non-2xx response from the document store.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error: status=%d body=%s", e.StatusCode, e.Body)
}

// Client is a thin wrapper around the three document-store operations.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(apiKey string, log *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// QueryRequest is the body of a database query call.
type QueryRequest struct {
	Filter   Filter `json:"filter,omitempty"`
	Sorts    []Sort `json:"sorts,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

// Sort orders query results by a property or by a page timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// Page is one record returned by a query.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

type queryResponse struct {
	Results []Page `json:"results"`
}

type createRequest struct {
	Parent     parentRef           `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type createResponse struct {
	ID string `json:"id"`
}

type updateRequest struct {
	Properties map[string]Property `json:"properties"`
}

// QueryDatabase returns the pages of databaseID matching req.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *QueryRequest) ([]Page, error) {
	var out queryResponse
	path := fmt.Sprintf("/v1/databases/%s/query", databaseID)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return out.Results, nil
}

// CreatePage creates a record in databaseID and returns its ID.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props map[string]Property) (string, error) {
	req := createRequest{Parent: parentRef{DatabaseID: databaseID}, Properties: props}
	var out createResponse
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &out); err != nil {
		return "", fmt.Errorf("create page in %s: %w", databaseID, err)
	}
	return out.ID, nil
}

// UpdatePage partially updates the properties of an existing record.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props map[string]Property) error {
	req := updateRequest{Properties: props}
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, req, nil); err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), errorBodyLimit)}
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Errorf("notion request failed: %s", apiErr.Body)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
