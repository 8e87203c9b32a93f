package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ResendSender sends email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

func NewResendSender(apiKey, from string, logger zerolog.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger.With().Str("component", "email").Logger(),
	}
}

// Send delivers one email. Rate limit errors are surfaced with the reset
// window; nothing is retried.
func (s *ResendSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("email rate limit exceeded (resets in %s seconds): %w", rateLimitErr.Reset, err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().
		Str("email_id", sent.Id).
		Str("to", to).
		Msg("email sent")
	return nil
}

// DisabledSender is used when no email API key is configured; it logs what
// would have been sent and succeeds.
type DisabledSender struct {
	logger zerolog.Logger
}

func NewDisabledSender(logger zerolog.Logger) *DisabledSender {
	return &DisabledSender{logger: logger.With().Str("component", "email").Logger()}
}

func (s *DisabledSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("email sending disabled, skipping")
	return nil
}
