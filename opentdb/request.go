package opentdb

import (
	"context"
	"encoding/json"
	"net/url"
)

// Request is a pending GET against one endpoint whose body decodes into T.
// Configure it on one goroutine, then call Send.
type Request[T any] struct {
	EndpointOptions

	client   *Client
	endpoint string
	token    string
}

// newRequest snapshots the client's token when withToken is set
func newRequest[T any](c *Client, endpoint string, withToken bool) *Request[T] {
	r := &Request[T]{
		client:   c,
		endpoint: endpoint,
	}
	if withToken {
		r.token, _ = c.Token()
	}
	return r
}

// Endpoint returns the target URL without options or token
func (r *Request[T]) Endpoint() string {
	return r.endpoint
}

// URL previews the final URL with the token redacted. Options are not
// consumed.
func (r *Request[T]) URL() (string, error) {
	opts := r.EndpointOptions
	u, err := r.build(&opts)
	if err != nil {
		return "", err
	}
	return redactURL(u), nil
}

// Send performs the request: exactly one round trip, no retries.
func (r *Request[T]) Send(ctx context.Context) (T, error) {
	var zero T

	u, err := r.build(&r.EndpointOptions)
	if err != nil {
		return zero, err
	}

	body, err := r.client.doRequest(ctx, u)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return zero, &DecodeError{Body: body, Err: err}
	}

	return result, nil
}

// build attaches the token ahead of the options
func (r *Request[T]) build(opts *EndpointOptions) (*url.URL, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, invalidOption("endpoint %q: %v", r.endpoint, err)
	}

	if r.token != "" {
		appendQuery(u, "token", r.token)
	}
	opts.Apply(u)

	return u, nil
}
