// Package blocking wraps the opentdb client for callers that do not want to
// manage contexts. Every call is executed on a dedicated worker goroutine
// owned by the Client and blocks until the result is available.
//
// Calls on one Client from many goroutines are serialized. Use Clone to get
// an independent handle that shares the connection pool.
package blocking

import (
	"github.com/s0up4200/otdb/opentdb"
)

// Client is the blocking counterpart of opentdb.Client
type Client struct {
	inner *opentdb.Client
	exec  *executor
}

// NewClient creates a blocking client configured with opts
func NewClient(opts ...opentdb.Option) *Client {
	return Wrap(opentdb.NewClient(opts...))
}

// Wrap returns a blocking client backed by c. Token changes made through
// either handle are visible to both.
func Wrap(c *opentdb.Client) *Client {
	return &Client{
		inner: c,
		exec:  newExecutor(),
	}
}

// Async returns the underlying context-aware client
func (c *Client) Async() *opentdb.Client {
	return c.inner
}

// Clone returns an independent blocking client with its own worker and a
// copy of the token
func (c *Client) Clone() *Client {
	return Wrap(c.inner.Clone())
}

// Close stops the worker and cancels the request in flight, if any.
// Subsequent calls fail with ErrClosed.
func (c *Client) Close() error {
	c.exec.stop()
	logger := c.inner.Logger()
	logger.Debug().Msg("Blocking OpenTDB client closed")
	return nil
}

// SetToken stores the session token attached to later requests
func (c *Client) SetToken(token string) {
	c.inner.SetToken(token)
}

// ClearToken removes the stored session token
func (c *Client) ClearToken() {
	c.inner.ClearToken()
}

// Token returns the stored session token, if any
func (c *Client) Token() (string, bool) {
	return c.inner.Token()
}

// GenerateToken requests a new session token without storing it
func (c *Client) GenerateToken() (string, error) {
	return run(c.exec, c.inner.GenerateToken)
}

// ResetToken behaves like opentdb.Client.ResetToken
func (c *Client) ResetToken() (string, error) {
	return run(c.exec, c.inner.ResetToken)
}

// Trivia returns a request for the question endpoint
func (c *Client) Trivia() *Request[opentdb.TriviaResponse] {
	return wrapRequest(c, c.inner.Trivia())
}

// CategoryDetails returns a request for the question counts of category
func (c *Client) CategoryDetails(category opentdb.Category) *Request[opentdb.CategoryDetails] {
	return wrapRequest(c, c.inner.CategoryDetails(category))
}

// GlobalDetails returns a request for the global question counts
func (c *Client) GlobalDetails() *Request[opentdb.GlobalDetails] {
	return wrapRequest(c, c.inner.GlobalDetails())
}

// NewRequest returns a blocking request for an arbitrary endpoint
func NewRequest[T any](c *Client, endpoint string) *Request[T] {
	return wrapRequest(c, opentdb.NewRequest[T](c.inner, endpoint))
}

// Request embeds the async request so the option setters stay available
type Request[T any] struct {
	*opentdb.Request[T]

	exec *executor
}

func wrapRequest[T any](c *Client, r *opentdb.Request[T]) *Request[T] {
	return &Request[T]{Request: r, exec: c.exec}
}

// Send performs the request on the client's worker and waits for it
func (r *Request[T]) Send() (T, error) {
	return run(r.exec, r.Request.Send)
}
