package notify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned by subscription operations when no broker URL
// was configured. Publishing degrades to a warning instead; it must never
// fail the surrounding request.
var ErrNotConfigured = errors.New("notifications topic not configured")

const (
	ProtocolEmail = "email"
	ProtocolSMS   = "sms"
)

// Subscription is a registered interest in one listing's events.
type Subscription struct {
	RoomID   string `json:"roomId"`
	Protocol string `json:"protocol"`
	Endpoint string `json:"endpoint"`
	Queue    string `json:"-"`
	// Status is "confirmed" for sms endpoints and "pending" for email
	// endpoints, which confirm out of band.
	Status string `json:"status"`
}

// DeliverFunc hands a consumed event to a subscription's endpoint.
type DeliverFunc func(ctx context.Context, event Event, sub Subscription) error

// Broker publishes room events to a durable topic exchange and registers
// per-listing subscriptions against it. The routing key is
// room.<type>.<roomId>, so a binding of room.*.<roomId> filters one listing.
type Broker struct {
	conn     *amqp.Connection
	pubCh    *amqp.Channel
	exchange string
	deliver  DeliverFunc
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBroker connects to the broker at url and declares the topic exchange.
// An empty url yields a disabled broker: publishes warn and no-op,
// subscriptions fail with ErrNotConfigured.
func NewBroker(url, exchange string, deliver DeliverFunc, logger zerolog.Logger) (*Broker, error) {
	logger = logger.With().Str("component", "notify").Logger()
	ctx, cancel := context.WithCancel(context.Background())

	if url == "" {
		return &Broker{deliver: deliver, logger: logger, ctx: ctx, cancel: cancel}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		cancel()
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		cancel()
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Broker{
		conn:     conn,
		pubCh:    ch,
		exchange: exchange,
		deliver:  deliver,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Enabled reports whether a broker connection is configured.
func (b *Broker) Enabled() bool {
	return b.conn != nil
}

// Publish emits event to the topic, tagged with the room id both in the
// routing key and as a header. On a disabled broker it logs a warning and
// succeeds so the caller's primary effect is never rolled back for want of
// a notification channel.
func (b *Broker) Publish(ctx context.Context, event Event) error {
	if !b.Enabled() {
		b.logger.Warn().
			Str("room_id", event.RoomID).
			Str("type", string(event.Type)).
			Msg("notifications topic not configured; skipping notification")
		return nil
	}

	now := time.Now().UTC()
	event.Message = event.Type.Subject()
	event.Timestamp = now.Format(time.RFC3339)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	key := fmt.Sprintf("room.%s.%s", event.Type, event.RoomID)
	err = b.pubCh.PublishWithContext(ctx, b.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   now,
		Headers:     amqp.Table{"roomId": event.RoomID},
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	b.logger.Info().
		Str("room_id", event.RoomID).
		Str("type", string(event.Type)).
		Msg("room event published")
	return nil
}

// Subscribe registers endpoint for every event of roomID and attaches a
// consumer that forwards matching events through the broker's DeliverFunc.
// Delivery is best-effort, at most once per event.
func (b *Broker) Subscribe(ctx context.Context, roomID, protocol, endpoint string) (*Subscription, error) {
	if !b.Enabled() {
		return nil, ErrNotConfigured
	}

	sub := Subscription{
		RoomID:   roomID,
		Protocol: protocol,
		Endpoint: endpoint,
		Queue:    queueName(roomID, protocol, endpoint),
		Status:   "confirmed",
	}
	if protocol == ProtocolEmail {
		sub.Status = "pending"
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(sub.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", sub.Queue, err)
	}
	bindingKey := fmt.Sprintf("room.*.%s", roomID)
	if err := ch.QueueBind(sub.Queue, bindingKey, b.exchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("bind %s: %w", bindingKey, err)
	}

	deliveries, err := ch.ConsumeWithContext(b.ctx, sub.Queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consume %s: %w", sub.Queue, err)
	}
	go b.consume(ch, deliveries, sub)

	b.logger.Info().
		Str("room_id", roomID).
		Str("protocol", protocol).
		Str("queue", sub.Queue).
		Msg("subscription registered")
	return &sub, nil
}

func (b *Broker) consume(ch *amqp.Channel, deliveries <-chan amqp.Delivery, sub Subscription) {
	defer func() { _ = ch.Close() }()
	for d := range deliveries {
		var event Event
		if err := json.Unmarshal(d.Body, &event); err != nil {
			b.logger.Error().Err(err).Str("queue", sub.Queue).Msg("undecodable event dropped")
			_ = d.Ack(false)
			continue
		}
		if err := b.deliver(b.ctx, event, sub); err != nil {
			b.logger.Error().Err(err).
				Str("queue", sub.Queue).
				Str("room_id", event.RoomID).
				Msg("event delivery failed")
		}
		// At-most-once: acked whether or not delivery succeeded.
		_ = d.Ack(false)
	}
}

// Close tears down the consumers and the broker connection.
func (b *Broker) Close() error {
	b.cancel()
	if b.pubCh != nil {
		_ = b.pubCh.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// queueName derives a stable queue identity for a subscription without
// embedding the raw endpoint in broker metadata.
func queueName(roomID, protocol, endpoint string) string {
	digest := sha256.Sum256([]byte(endpoint))
	return fmt.Sprintf("room-subs.%s.%s.%s", protocol, hex.EncodeToString(digest[:])[:10], roomID)
}
