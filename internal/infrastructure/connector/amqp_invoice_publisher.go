package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"github.com/streadway/amqp"
)

// amqpChannel is the subset of *amqp.Channel used for publishing
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AmqpInvoicePublisher publishes invoice events as JSON messages on a topic exchange
type AmqpInvoicePublisher struct {
	conn       *amqp.Connection
	ch         amqpChannel
	exchange   string
	routingKey string
	logger     logger.Logger

	// an amqp channel must not be shared by concurrent publishers
	mu sync.Mutex
}

// NewAmqpInvoicePublisher dials the broker and declares the durable exchange
func NewAmqpInvoicePublisher(ctx context.Context, settings *config.EventSettings, logger logger.Logger) (*AmqpInvoicePublisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	publisher, err := newAmqpInvoicePublisher(ch, settings, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	publisher.conn = conn

	logger.Info("connected to RabbitMQ", "exchange", settings.Exchange)
	return publisher, nil
}

func newAmqpInvoicePublisher(ch amqpChannel, settings *config.EventSettings, logger logger.Logger) (*AmqpInvoicePublisher, error) {
	if err := ch.ExchangeDeclare(settings.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", settings.Exchange, err)
	}

	return &AmqpInvoicePublisher{
		ch:         ch,
		exchange:   settings.Exchange,
		routingKey: settings.RoutingKey,
		logger:     logger,
	}, nil
}

// Publish sends event as a persistent message. The routing key is suffixed
// with the target status so consumers can bind on e.g. invoice.status.paid.
func (p *AmqpInvoicePublisher) Publish(ctx context.Context, event billing.InvoiceEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.PublicationID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Publish(p.exchange, p.routingKeyFor(event), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message to RabbitMQ: %w", err)
	}

	p.logger.Debug("invoice event published", "invoice_id", event.InvoiceID, "to", string(event.To))
	return nil
}

func (p *AmqpInvoicePublisher) routingKeyFor(event billing.InvoiceEvent) string {
	if p.routingKey == "" {
		return string(event.To)
	}
	return p.routingKey + "." + string(event.To)
}

// Close closes the channel and then the connection
func (p *AmqpInvoicePublisher) Close() error {
	var errs []error

	if err := p.ch.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing RabbitMQ channel: %w", err))
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing RabbitMQ connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ shutdown: %v", errs)
	}

	return nil
}
