// package api wraps every outbound call to the hei!local backend.
//
// The client attaches the stored access token as a bearer credential,
// recovers from a single authorization failure per logical request by
// refreshing the access token and retrying once, and surfaces everything
// else to the caller unmodified.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/heilocal/heilocal/internal/session"
	"github.com/heilocal/heilocal/internal/shared"
)

// DefaultBaseURL mirrors the backend default from the original deployment.
const DefaultBaseURL = "http://localhost:8080/api"

// requestTimeout matches the 10 second timeout of the original client.
const requestTimeout = 10 * time.Second

// Client is the authenticated HTTP client for the backend REST API.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	session          session.Store
	logger           *log.Logger
	onSessionExpired func()
}

// Opts contains configuration options for creating a [Client].
type Opts struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    session.Store
	Logger     *log.Logger
}

// NewClient creates a new API client with the provided options.
func NewClient(opts Opts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if opts.Session == nil {
		opts.Session = session.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		logger:     opts.Logger,
	}
}

// OnSessionExpired registers the hook fired when the session becomes
// irrecoverable (refresh failed or no refresh token). The UI layer uses it
// to route the user back to the login entry point.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Session returns the underlying token store.
func (c *Client) Session() session.Store {
	return c.session
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an authenticated GET request and decodes the JSON response
// into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result, 0)
}

// Post performs an authenticated POST request with a JSON body and decodes
// the JSON response into result. Both body and result may be nil.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result, 0)
}

// do executes one attempt of a logical request. attempt counts retries for
// this logical request: the refresh-and-retry cycle runs only when attempt
// is zero, so a retried request can never trigger a second refresh.
func (c *Client) do(ctx context.Context, method, path string, body, result any, attempt int) error {
	url := c.baseURL + path
	reqID := shared.GenerateID()

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "id", reqID, "method", method, "path", path, "attempt", attempt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", shared.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		unauthorized := statusError(shared.ErrUnauthorized, resp.StatusCode, respBody)
		if attempt > 0 {
			// Already retried once with a fresh token; give up rather
			// than loop on a backend that keeps returning 401.
			return unauthorized
		}

		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			c.logger.Debug("unauthorized with no refresh token", "id", reqID)
			c.expireSession()
			return unauthorized
		}

		access, refreshErr := c.refreshAccessToken(ctx, refreshToken)
		if refreshErr != nil {
			c.logger.Warn("token refresh failed", "id", reqID, "error", refreshErr)
			c.expireSession()
			return unauthorized
		}

		if err := c.session.SetAccessToken(access); err != nil {
			return fmt.Errorf("failed to store refreshed token: %w", err)
		}

		c.logger.Debug("token refreshed, retrying request", "id", reqID)
		return c.do(ctx, method, path, body, result, attempt+1)

	case resp.StatusCode == http.StatusNotFound:
		return statusError(shared.ErrLocationNotFound, resp.StatusCode, respBody)

	case resp.StatusCode == http.StatusForbidden:
		c.logger.Warn("access forbidden", "id", reqID, "path", path)
		return statusError(shared.ErrForbidden, resp.StatusCode, respBody)

	case resp.StatusCode >= 500:
		c.logger.Error("server error", "id", reqID, "path", path, "status", resp.StatusCode)
		return statusError(shared.ErrServer, resp.StatusCode, respBody)

	default:
		return statusError(shared.ErrValidation, resp.StatusCode, respBody)
	}
}

// refreshRequest and refreshResponse mirror POST /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// refreshAccessToken exchanges the refresh token for a new access token.
// Runs outside the retry pipeline: a failing refresh must never recurse
// into another refresh. Concurrent in-flight requests each trigger their
// own refresh; the backend tolerates redundant refresh calls.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	jsonData, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(shared.ErrRefreshFailed, resp.StatusCode, respBody)
	}

	var parsed refreshResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", shared.ErrRefreshFailed)
	}

	return parsed.AccessToken, nil
}

// expireSession clears both tokens and signals the UI layer.
func (c *Client) expireSession() {
	if err := c.session.Clear(); err != nil {
		c.logger.Error("failed to clear session", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// statusError builds a sentinel-wrapped error carrying the status code and
// the server's message when one was sent.
func statusError(sentinel error, status int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("%w: status %d: %s", sentinel, status, errResp.Message)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%w: status %d", sentinel, status)
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, status, msg)
}
