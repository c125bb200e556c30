package connector

import (
	"context"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// NewInvoiceEventPublisher returns the AMQP publisher when events are enabled
// and a publisher that only logs otherwise.
func NewInvoiceEventPublisher(ctx context.Context, settings *config.EventSettings, logger logger.Logger) (billing.InvoiceEventPublisher, error) {
	if !settings.Enabled {
		return NewLogInvoicePublisher(logger), nil
	}
	return NewAmqpInvoicePublisher(ctx, settings, logger)
}

// LogInvoicePublisher writes events to the logger instead of a broker
type LogInvoicePublisher struct {
	logger logger.Logger
}

// NewLogInvoicePublisher creates a LogInvoicePublisher
func NewLogInvoicePublisher(logger logger.Logger) *LogInvoicePublisher {
	return &LogInvoicePublisher{logger: logger}
}

// Publish logs the status change
func (p *LogInvoicePublisher) Publish(ctx context.Context, event billing.InvoiceEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.Info("invoice status changed",
		"invoice_id", event.InvoiceID,
		"publication_id", event.PublicationID,
		"from", string(event.From),
		"to", string(event.To))
	return nil
}

// Close is a no-op
func (p *LogInvoicePublisher) Close() error {
	return nil
}
