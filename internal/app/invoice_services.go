package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// invoiceService implements the InvoiceService interface
type invoiceService struct {
	uow       billing.UnitOfWork
	publisher billing.InvoiceEventPublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService instance. publisher may be
// nil, in which case status changes are not forwarded.
func NewInvoiceService(uow billing.UnitOfWork, publisher billing.InvoiceEventPublisher, logger logger.Logger) (billing.InvoiceService, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &invoiceService{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create issues a draft invoice. A publication id is generated when none is
// given and the issue time defaults to now.
func (s *invoiceService) Create(ctx context.Context, invoice *billing.Invoice) (*billing.Invoice, error) {
	switch invoice.Status {
	case "":
		invoice.Status = billing.InvoiceStatusDraft
	case billing.InvoiceStatusDraft:
	default:
		return nil, fmt.Errorf("%w: new invoices start as %s, got %s", billing.ErrValidation, billing.InvoiceStatusDraft, invoice.Status)
	}
	if invoice.PublicationID == "" {
		invoice.PublicationID = uuid.New().String()
	}
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = s.now().Truncate(time.Second)
	}
	invoice.IssuedAt = invoice.IssuedAt.UTC()

	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		if _, err := repos.Contracts.GetByID(ctx, invoice.ContractID); err != nil {
			return err
		}
		return repos.Invoices.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// List returns the invoices matching query
func (s *invoiceService) List(ctx context.Context, query *billing.InvoiceQuery) ([]*billing.Invoice, error) {
	invoices, err := s.uow.Repositories().Invoices.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetByID retrieves an invoice
func (s *invoiceService) GetByID(ctx context.Context, invoiceID int64) (*billing.Invoice, error) {
	return s.uow.Repositories().Invoices.GetByID(ctx, invoiceID)
}

// UpdateAmount changes the amount of an invoice that is not yet published
func (s *invoiceService) UpdateAmount(ctx context.Context, invoiceID int64, amount float64) (*billing.Invoice, error) {
	var invoice *billing.Invoice
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		var err error
		invoice, err = repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.SetAmount(amount); err != nil {
			return err
		}
		return repos.Invoices.UpdateByID(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteByID removes a draft invoice
func (s *invoiceService) DeleteByID(ctx context.Context, invoiceID int64) error {
	return s.uow.Do(ctx, func(repos billing.Repositories) error {
		invoice, err := repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != billing.InvoiceStatusDraft {
			return fmt.Errorf("%w: only draft invoices can be deleted, %s is %s", billing.ErrNotEditable, invoice.PublicationID, invoice.Status)
		}
		return repos.Invoices.DeleteByID(ctx, invoiceID)
	})
}

// Transition moves an invoice to status and emits the matching event once
// the change is committed.
func (s *invoiceService) Transition(ctx context.Context, invoiceID int64, status billing.InvoiceStatus) (*billing.Invoice, error) {
	var (
		invoice *billing.Invoice
		event   billing.InvoiceEvent
	)
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		var err error
		invoice, err = repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		event, err = s.transition(ctx, repos, invoice, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event)
	return invoice, nil
}

// PublishBatch publishes every listed invoice or none of them. Each invoice
// must be computed.
func (s *invoiceService) PublishBatch(ctx context.Context, invoiceIDs []int64) ([]*billing.Invoice, error) {
	ids := uniqueIDs(invoiceIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one invoice id is required", billing.ErrValidation)
	}

	invoices := make([]*billing.Invoice, 0, len(ids))
	events := make([]billing.InvoiceEvent, 0, len(ids))

	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		for _, id := range ids {
			invoice, err := repos.Invoices.GetByID(ctx, id)
			if err != nil {
				return err
			}
			event, err := s.transition(ctx, repos, invoice, billing.InvoiceStatusPublished)
			if err != nil {
				return fmt.Errorf("invoice %d: %w", id, err)
			}
			invoices = append(invoices, invoice)
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch publication rolled back: %w", err)
	}

	for _, event := range events {
		s.publish(ctx, event)
	}
	s.logger.Info("invoices published", "count", len(invoices))
	return invoices, nil
}

// Summary totals the invoices of a contract for every status
func (s *invoiceService) Summary(ctx context.Context, contractID int64) (*billing.InvoiceSummary, error) {
	repos := s.uow.Repositories()
	if _, err := repos.Contracts.GetByID(ctx, contractID); err != nil {
		return nil, err
	}

	totals, err := repos.Invoices.SumByStatus(ctx, contractID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[billing.InvoiceStatus]billing.StatusTotal, len(totals))
	for _, total := range totals {
		byStatus[total.Status] = total
	}

	summary := &billing.InvoiceSummary{ContractID: contractID}
	for _, status := range billing.InvoiceStatuses {
		total, ok := byStatus[status]
		if !ok {
			total = billing.StatusTotal{Status: status}
		}
		summary.Totals = append(summary.Totals, total)
	}
	return summary, nil
}

func (s *invoiceService) transition(ctx context.Context, repos billing.Repositories, invoice *billing.Invoice, status billing.InvoiceStatus) (billing.InvoiceEvent, error) {
	from := invoice.Status
	if err := invoice.TransitionTo(status); err != nil {
		return billing.InvoiceEvent{}, err
	}
	if err := repos.Invoices.UpdateByID(ctx, invoice); err != nil {
		return billing.InvoiceEvent{}, err
	}

	return billing.InvoiceEvent{
		InvoiceID:     invoice.ID,
		PublicationID: invoice.PublicationID,
		ContractID:    invoice.ContractID,
		From:          from,
		To:            invoice.Status,
		Amount:        invoice.Amount,
		OccurredAt:    s.now(),
	}, nil
}

// publish forwards a committed event. The status change is already durable,
// so a broker failure is only logged.
func (s *invoiceService) publish(ctx context.Context, event billing.InvoiceEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish invoice event", "invoice_id", event.InvoiceID, "to", string(event.To), "error", err)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
