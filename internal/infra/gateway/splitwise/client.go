package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/pkg/logger"
)

const requestTimeout = 30 * time.Second

// Client is an HTTP client for the Splitwise REST API (v3.0). Requests are
// authenticated per call with the user's personal API key, so one client
// serves all users. Failures are translated into the importer error
// taxonomy: AuthError on 401, UpstreamError on any other non-2xx,
// TransportError on network failure.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new Splitwise API client
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		logger:  log.WithField("component", "splitwise"),
	}
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// GetCurrentUser resolves the Splitwise user id belonging to the API key
func (c *Client) GetCurrentUser(ctx context.Context, apiKey string) (int64, error) {
	body, err := c.doRequest(ctx, apiKey, "/get_current_user", nil)
	if err != nil {
		return 0, err
	}

	var resp currentUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &importer.UpstreamError{Message: "failed to decode Splitwise user response"}
	}

	if resp.User.ID == 0 {
		return 0, &importer.UpstreamError{Message: "could not determine your Splitwise user ID"}
	}

	return resp.User.ID, nil
}

// GetExpenses fetches a single page of expenses at the given limit/offset
func (c *Client) GetExpenses(ctx context.Context, apiKey string, limit, offset int) ([]Expense, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	body, err := c.doRequest(ctx, apiKey, "/get_expenses", params)
	if err != nil {
		return nil, err
	}

	var resp expensesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &importer.UpstreamError{Message: "failed to decode Splitwise expenses response"}
	}

	return resp.Expenses, nil
}

// doRequest performs an authenticated GET and classifies failures
func (c *Client) doRequest(ctx context.Context, apiKey, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	c.logger.Debug("API request", "path", path, "params", params.Encode())
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &importer.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &importer.TransportError{Err: err}
	}

	c.logger.Debug("API response", "path", path, "status_code", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &importer.AuthError{Message: "invalid API key, please check your Splitwise API key"}
	default:
		c.logger.Warn("API error", "path", path, "status_code", resp.StatusCode)
		return nil, &importer.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp.StatusCode, body),
		}
	}
}
