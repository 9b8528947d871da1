package opentdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public OpenTDB host
	DefaultBaseURL = "https://opentdb.com"

	defaultUserAgent     = "otdb-go"
	defaultTimeout       = 30 * time.Second
	defaultQuestionCount = 10

	triviaPath        = "/api.php?encode=base64"
	tokenRequestPath  = "/api_token.php?command=request"
	tokenResetPath    = "/api_token.php?command=reset"
	categoryCountPath = "/api_count.php"
	globalCountPath   = "/api_count_global.php"
)

// Client represents an OpenTDB API client. It is safe for concurrent use;
// the token is guarded so readers always see a complete value.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new OpenTDB client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		timeout := c.timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	} else if c.timeout > 0 {
		// the caller's client may be shared, so the timeout goes on a copy
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// Clone returns a client sharing the same transport with its own copy of
// the token.
func (c *Client) Clone() *Client {
	token, _ := c.Token()
	return &Client{
		baseURL:    c.baseURL,
		userAgent:  c.userAgent,
		timeout:    c.timeout,
		httpClient: c.httpClient,
		logger:     c.logger,
		token:      token,
	}
}

// BaseURL returns the host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Logger returns the client's logger
func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

// SetToken stores the session token attached to later requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the stored session token
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the stored session token, if any
func (c *Client) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

// GenerateToken requests a new session token. The token is returned but not
// stored; call SetToken to use it.
func (c *Client) GenerateToken(ctx context.Context) (string, error) {
	resp, err := newRequest[TokenResponse](c, c.baseURL+tokenRequestPath, false).Send(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if resp.Token == "" {
		return "", &DecodeError{Err: fmt.Errorf("token response without token (response code %s)", resp.ResponseCode)}
	}

	c.logger.Debug().Msg("Generated OpenTDB session token")
	return resp.Token, nil
}

// ResetToken clears the server side history of the stored token and returns
// the token reported by the server. The stored token is left as is.
//
// If the client has no token, ResetToken generates one and stores it. Unlike
// GenerateToken, this path persists the token.
func (c *Client) ResetToken(ctx context.Context) (string, error) {
	if _, ok := c.Token(); !ok {
		token, err := c.GenerateToken(ctx)
		if err != nil {
			return "", err
		}
		c.SetToken(token)
		return token, nil
	}

	resp, err := newRequest[TokenResponse](c, c.baseURL+tokenResetPath, true).Send(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to reset token: %w", err)
	}
	if resp.Token == "" {
		return "", &DecodeError{Err: fmt.Errorf("token response without token (response code %s)", resp.ResponseCode)}
	}

	c.logger.Debug().Msg("Reset OpenTDB session token")
	return resp.Token, nil
}

// Trivia returns a request for the question endpoint. The amount defaults
// to 10 questions.
func (c *Client) Trivia() *Request[TriviaResponse] {
	r := newRequest[TriviaResponse](c, c.baseURL+triviaPath, true)
	r.amount, r.hasAmount = defaultQuestionCount, true
	return r
}

// CategoryDetails returns a request for the question counts of a category.
// No token is sent.
func (c *Client) CategoryDetails(category Category) *Request[CategoryDetails] {
	endpoint := c.baseURL + categoryCountPath + "?category=" + strconv.Itoa(category.ID())
	return newRequest[CategoryDetails](c, endpoint, false)
}

// GlobalDetails returns a request for the global question counts. No token
// is sent.
func (c *Client) GlobalDetails() *Request[GlobalDetails] {
	return newRequest[GlobalDetails](c, c.baseURL+globalCountPath, false)
}

// NewRequest returns a request for an arbitrary endpoint decoded into T.
// Relative endpoints are resolved against the client's base URL. The token
// is attached when present.
func NewRequest[T any](c *Client, endpoint string) *Request[T] {
	return newRequest[T](c, c.resolve(endpoint), true)
}

func (c *Client) resolve(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, u *url.URL) ([]byte, error) {
	redacted := redactURL(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redacted
		}
		return nil, &TransportError{URL: redacted, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("endpoint", u.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("OpenTDB request completed")

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// redactURL renders u with the token value hidden
func redactURL(u *url.URL) string {
	q := u.Query()
	if !q.Has("token") {
		return u.String()
	}
	q.Set("token", "REDACTED")
	redacted := *u
	redacted.RawQuery = q.Encode()
	return redacted.String()
}
