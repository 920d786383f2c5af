package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/billscan/backend/internal/domain"
)

// maxResponseBytes caps how much of a classifier response body is read
const maxResponseBytes = 64 << 10

// Client talks to the expense categorization service
type Client struct {
	httpClient *http.Client
	baseURL    string
	path       string
	debug      bool
}

// NewClient creates a new classifier API client
func NewClient(baseURL, path string, timeout time.Duration) *Client {
	if path == "" {
		path = "/categorize"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
	}
}

// SetDebug enables or disables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Classify posts the description to the classifier and returns its category label.
// A single attempt is made; every failure is reported as domain.ErrClassifierFailure.
func (c *Client) Classify(ctx context.Context, description string) (string, error) {
	payload, err := json.Marshal(domain.ClassifierRequest{Description: description})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrClassifierFailure, err)
	}

	endpoint := c.baseURL + c.path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", domain.ErrClassifierFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BillScan/1.0")

	if c.debug {
		log.Printf("[CLASSIFIER] POST %s description=%q", endpoint, description)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClassifierFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrClassifierFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrClassifierFailure, resp.StatusCode, string(body))
	}

	var result domain.ClassifierResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrClassifierFailure, err)
	}

	if strings.TrimSpace(result.Category) == "" {
		if result.Error != "" {
			return "", fmt.Errorf("%w: classifier error: %s", domain.ErrClassifierFailure, result.Error)
		}
		return "", fmt.Errorf("%w: response has no category", domain.ErrClassifierFailure)
	}

	if c.debug {
		log.Printf("[CLASSIFIER] %q categorized as %q", description, result.Category)
	}

	return result.Category, nil
}
