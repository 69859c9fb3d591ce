// Package email delivers notification mail through an external provider.
// The award selector uses it to congratulate the Member of the Month.
package email

import (
	"context"
	"time"
)

// SendRequest is one outbound email.
type SendRequest struct {
	To      []string
	From    string // falls back to the sender's default when empty
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult is the provider's acknowledgement of a send.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
