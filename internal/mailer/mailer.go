// Package mailer renders contact inquiries into email bodies and hands them
// to a transactional email provider.
package mailer

import (
	"context"
	"errors"
)

// Message is a provider-neutral outbound email.
type Message struct {
	FromAddress    string
	FromName       string
	ToAddress      string
	ToName         string
	ReplyToAddress string
	ReplyToName    string
	Subject        string
	HTMLBody       string
	TextBody       string
}

// Sender delivers a Message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// ErrMissingCredentials is returned when a provider is used without its
// API token or credentials.
var ErrMissingCredentials = errors.New("email provider credentials not configured")
