package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a durable direct exchange. The
// routing key doubles as the name of the bound queue.
type AMQPPublisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
	logger     *logger.Logger
}

// NewPublisher returns an [AMQPPublisher] when cfg.AMQPURL is set and the
// broker is reachable, and a [NopPublisher] otherwise.
func NewPublisher(cfg config.Events, log *logger.Logger) Publisher {
	if cfg.AMQPURL == "" {
		log.Info().Str("func", "events.NewPublisher").Msg("AMQP disabled, events will not be published")
		return NopPublisher{}
	}

	publisher, err := NewAMQPPublisher(cfg, log)
	if err != nil {
		log.Warn().Err(err).Str("func", "events.NewPublisher").Msg("failed to connect to AMQP broker, events will not be published")
		return NopPublisher{}
	}

	return publisher
}

// NewAMQPPublisher dials the broker and declares the exchange, the queue
// and their binding.
func NewAMQPPublisher(cfg config.Events, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = setup(ch, cfg.Exchange, cfg.RoutingKey); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	log.Info().
		Str("func", "events.NewAMQPPublisher").
		Str("exchange", cfg.Exchange).
		Str("routing_key", cfg.RoutingKey).
		Msg("AMQP publisher initialized")

	return &AMQPPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     log,
	}, nil
}

func setup(ch *amqp091.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish sends event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event models.TransactionEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "AMQPPublisher.Publish").
		Str("type", string(event.Type)).
		Int64("owner_id", event.OwnerID).
		Int("count", event.Count).
		Msg("event published")

	return nil
}

func newPublishing(event models.TransactionEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}, nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
