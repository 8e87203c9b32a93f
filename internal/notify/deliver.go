package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
)

// emailSender is the subset of email.Sender the deliverer requires.
type emailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// textSender is the subset of SMSClient the deliverer requires.
type textSender interface {
	Send(ctx context.Context, phone, text string) error
}

// EndpointDeliverer returns a DeliverFunc that hands consumed room events to
// subscription endpoints: email endpoints get an HTML mail, sms endpoints a
// text message.
func EndpointDeliverer(mail emailSender, sms textSender, logger zerolog.Logger) DeliverFunc {
	logger = logger.With().Str("component", "deliver").Logger()
	return func(ctx context.Context, event Event, sub Subscription) error {
		switch sub.Protocol {
		case ProtocolEmail:
			body := fmt.Sprintf("<p>%s</p><p>Listing: %s (%s)</p>",
				html.EscapeString(event.Message),
				html.EscapeString(event.Title),
				html.EscapeString(event.RoomID))
			return mail.Send(ctx, sub.Endpoint, event.Message, body)
		case ProtocolSMS:
			text := fmt.Sprintf("%s: %s", event.Message, event.Title)
			return sms.Send(ctx, sub.Endpoint, text)
		default:
			logger.Warn().Str("protocol", sub.Protocol).Msg("unknown subscription protocol")
			return fmt.Errorf("unknown protocol %q", sub.Protocol)
		}
	}
}
