package opentdb

import (
	"context"
)

// Sender is implemented by every Request
type Sender[T any] interface {
	// Send performs the request and decodes the response
	Send(ctx context.Context) (T, error)
}

// TokenManager defines the session token lifecycle
type TokenManager interface {
	// Token returns the stored token, if any
	Token() (string, bool)

	// SetToken stores a token for later requests
	SetToken(token string)

	// GenerateToken requests a new token without storing it
	GenerateToken(ctx context.Context) (string, error)

	// ResetToken resets the stored token, or generates and stores one
	ResetToken(ctx context.Context) (string, error)
}

var (
	_ Sender[TriviaResponse] = (*Request[TriviaResponse])(nil)
	_ TokenManager           = (*Client)(nil)
)
