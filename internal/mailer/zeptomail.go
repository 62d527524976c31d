package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultZeptoURL is the ZeptoMail send endpoint.
const DefaultZeptoURL = "https://api.zeptomail.com/v1.1/email"

// ZeptoMail sends through the ZeptoMail HTTP API.
type ZeptoMail struct {
	client *resty.Client
	url    string
	token  string
}

type zeptoAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type zeptoRecipient struct {
	EmailAddress zeptoAddress `json:"email_address"`
}

type zeptoRequest struct {
	From     zeptoAddress     `json:"from"`
	To       []zeptoRecipient `json:"to"`
	ReplyTo  []zeptoAddress   `json:"reply_to,omitempty"`
	Subject  string           `json:"subject"`
	HTMLBody string           `json:"htmlbody"`
	TextBody string           `json:"textbody"`
}

type zeptoError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewZeptoMail(url, token string, timeout time.Duration) *ZeptoMail {
	if url == "" {
		url = DefaultZeptoURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ZeptoMail{
		client: resty.New().SetTimeout(timeout).SetRetryCount(0),
		url:    url,
		token:  token,
	}
}

func (z *ZeptoMail) Name() string { return "zeptomail" }

// Send posts the message once. Any non-2xx answer is an error carrying the
// provider's message when it sent one.
func (z *ZeptoMail) Send(ctx context.Context, msg Message) error {
	if z.token == "" {
		return ErrMissingCredentials
	}

	req := zeptoRequest{
		From: zeptoAddress{Address: msg.FromAddress, Name: msg.FromName},
		To: []zeptoRecipient{{
			EmailAddress: zeptoAddress{Address: msg.ToAddress, Name: msg.ToName},
		}},
		Subject:  msg.Subject,
		HTMLBody: msg.HTMLBody,
		TextBody: msg.TextBody,
	}
	if msg.ReplyToAddress != "" {
		req.ReplyTo = []zeptoAddress{{Address: msg.ReplyToAddress, Name: msg.ReplyToName}}
	}

	var apiErr zeptoError
	resp, err := z.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", z.token).
		SetBody(req).
		SetError(&apiErr).
		Post(z.url)
	if err != nil {
		return fmt.Errorf("error calling ZeptoMail API: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error != nil && apiErr.Error.Message != "" {
			return fmt.Errorf("ZeptoMail API error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return fmt.Errorf("ZeptoMail API error (status %d)", resp.StatusCode())
	}

	return nil
}
