package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the part of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SES sends through Amazon Simple Email Service.
type SES struct {
	client SESAPI
}

// NewSES builds a client from the default AWS credential chain.
func NewSES(ctx context.Context, region string) (*SES, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SES{client: ses.NewFromConfig(cfg)}, nil
}

func NewSESWithClient(client SESAPI) *SES {
	return &SES{client: client}
}

func (s *SES) Name() string { return "ses" }

func (s *SES) Send(ctx context.Context, msg Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(formatAddress(msg.FromName, msg.FromAddress)),
		Destination: &types.Destination{
			ToAddresses: []string{formatAddress(msg.ToName, msg.ToAddress)},
		},
		Message: &types.Message{
			Subject: utf8Content(msg.Subject),
			Body: &types.Body{
				Html: utf8Content(msg.HTMLBody),
				Text: utf8Content(msg.TextBody),
			},
		},
	}
	if msg.ReplyToAddress != "" {
		input.ReplyToAddresses = []string{formatAddress(msg.ReplyToName, msg.ReplyToAddress)}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("error calling SES SendEmail: %w", err)
	}
	return nil
}

func utf8Content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}
