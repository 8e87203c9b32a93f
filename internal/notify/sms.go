package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrSMSNotConfigured is returned when no outbound SMS gateway was
// configured.
var ErrSMSNotConfigured = errors.New("sms gateway not configured")

// SMSClient sends point-to-point text messages through an HTTP SMS gateway.
// It is used for direct owner contact and for sms subscription delivery.
type SMSClient struct {
	http   *resty.Client
	logger zerolog.Logger
}

type smsRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewSMSClient builds a client for the gateway at baseURL. An empty baseURL
// yields a disabled client whose sends fail with ErrSMSNotConfigured.
func NewSMSClient(baseURL, apiKey string, logger zerolog.Logger) *SMSClient {
	logger = logger.With().Str("component", "sms").Logger()
	if baseURL == "" {
		return &SMSClient{logger: logger}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SMSClient{http: client, logger: logger}
}

// Send delivers text to the E.164 number phone. Attempted once; there is no
// retry policy.
func (c *SMSClient) Send(ctx context.Context, phone, text string) error {
	if c.http == nil {
		return ErrSMSNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(smsRequest{To: phone, Body: text}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms gateway returned %s: %s", resp.Status(), resp.String())
	}

	c.logger.Info().Str("to", phone).Msg("sms sent")
	return nil
}
