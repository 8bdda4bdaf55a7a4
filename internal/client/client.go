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

	"github.com/google/uuid"

	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
)

const (
	APIKeyHeader    = "api-key"
	RequestIDHeader = "X-Request-ID"
)

// HTTPError is returned for any non-2xx response
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the exchange
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// APIClient handles all HTTP communication with the Lykke APIs
type APIClient struct {
	config     *config.Config
	httpClient *http.Client
}

// NewAPIClient creates a new API client with the given configuration
func NewAPIClient(cfg *config.Config) *APIClient {
	return NewAPIClientWithHTTPClient(cfg, &http.Client{
		Timeout: cfg.RequestTimeout,
	})
}

// NewAPIClientWithHTTPClient lets callers bring their own transport
func NewAPIClientWithHTTPClient(cfg *config.Config, httpClient *http.Client) *APIClient {
	return &APIClient{
		config:     cfg,
		httpClient: httpClient,
	}
}

// PublicURL builds a URL on the public (unauthenticated) API
func (c *APIClient) PublicURL(endpoint string, params map[string]string) string {
	return BuildURLWithParams(c.config.PublicURL+endpoint, params)
}

// HFTURL builds a URL on the authenticated trading API
func (c *APIClient) HFTURL(endpoint string, params map[string]string) string {
	return BuildURLWithParams(c.config.HFTURL+endpoint, params)
}

// Get makes a GET request. A nil body with a nil error means the server had
// no content for the request.
func (c *APIClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.request(ctx, http.MethodGet, url, nil, headers)
}

// Post makes a POST request with body encoded as JSON
func (c *APIClient) Post(ctx context.Context, url string, body interface{}, headers map[string]string) ([]byte, error) {
	return c.request(ctx, http.MethodPost, url, body, headers)
}

// request is the core HTTP request method
func (c *APIClient) request(ctx context.Context, method, url string, body interface{}, headers map[string]string) ([]byte, error) {
	requestID := uuid.NewString()
	start := time.Now()
	logger.Debug("[%s] Starting %s request to %s", requestID, method, url)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("[%s] Request to %s failed after %v: %v", requestID, url, elapsed, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	logger.Debug("[%s] Request to %s completed in %v with status %d", requestID, url, elapsed, resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("[%s] %s: HTTP error %d: %s", requestID, url, resp.StatusCode, string(bodyBytes))
		return nil, &HTTPError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil, nil
	}

	return bodyBytes, nil
}

// Ping checks if the trading API is alive
func (c *APIClient) Ping(ctx context.Context) error {
	if _, err := c.Get(ctx, c.HFTURL("/IsAlive", nil), nil); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// AuthHeaders returns the headers for an authenticated call
func AuthHeaders(apiKey string) map[string]string {
	return map[string]string{APIKeyHeader: apiKey}
}

// BuildURLWithParams properly builds a URL with query parameters
func BuildURLWithParams(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}

	// Parse the endpoint to check for existing query parameters
	parts := strings.SplitN(endpoint, "?", 2)
	baseURL := parts[0]

	values := url.Values{}
	if len(parts) > 1 {
		existingParams, _ := url.ParseQuery(parts[1])
		values = existingParams
	}

	for key, value := range params {
		values.Set(key, value)
	}

	if len(values) > 0 {
		return baseURL + "?" + values.Encode()
	}
	return baseURL
}
