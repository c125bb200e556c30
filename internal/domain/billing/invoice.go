package billing

import (
	"fmt"
	"time"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

// Invoice statuses
const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusComputed  InvoiceStatus = "computed"
	InvoiceStatusError     InvoiceStatus = "error"
	InvoiceStatusPublished InvoiceStatus = "published"
	InvoiceStatusPaid      InvoiceStatus = "paid"
)

// InvoiceStatuses lists every status in lifecycle order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusComputed,
	InvoiceStatusError,
	InvoiceStatusPublished,
	InvoiceStatusPaid,
}

// allowedTransitions maps a status to the statuses reachable from it.
// Paid is terminal.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:     {InvoiceStatusComputed, InvoiceStatusError},
	InvoiceStatusError:     {InvoiceStatusDraft, InvoiceStatusComputed},
	InvoiceStatusComputed:  {InvoiceStatusPublished, InvoiceStatusError, InvoiceStatusDraft},
	InvoiceStatusPublished: {InvoiceStatusPaid},
}

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	_, known := allowedTransitions[s]
	return known || s == InvoiceStatusPaid
}

// CanTransitionTo reports whether an invoice in status s may move to next.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsEditable reports whether the amount of an invoice in status s may change.
func (s InvoiceStatus) IsEditable() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusComputed, InvoiceStatusError:
		return true
	default:
		return false
	}
}

// Invoice is an amount billed under a contract.
type Invoice struct {
	ID            int64
	PublicationID string        `validate:"required,max=50"`
	IssuedAt      time.Time     `validate:"-"`
	Amount        float64       `validate:"gte=0"`
	Status        InvoiceStatus `validate:"invoice_status"`
	ContractID    int64         `validate:"gt=0"`

	Contract *Contract `validate:"-"`
}

// Validate for validating Invoice struct
func (i *Invoice) Validate() error {
	return validateStruct(i)
}

// TransitionTo moves the invoice to next, enforcing the status lifecycle.
func (i *Invoice) TransitionTo(next InvoiceStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	if !i.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, next)
	}
	i.Status = next
	return nil
}

// SetAmount changes the billed amount while the invoice is still editable.
func (i *Invoice) SetAmount(amount float64) error {
	if !i.Status.IsEditable() {
		return fmt.Errorf("%w: invoice %s", ErrNotEditable, i.PublicationID)
	}
	if amount < 0 {
		return validationError("amount must not be negative")
	}
	i.Amount = amount
	return nil
}

func (i *Invoice) String() string {
	return fmt.Sprintf("%s - %s", i.PublicationID, i.Status)
}

// GoString renders the invoice for %#v.
func (i *Invoice) GoString() string {
	return fmt.Sprintf("<Invoice n°%d - %s>", i.ID, i.String())
}

// StatusTotal aggregates the invoices of one status.
type StatusTotal struct {
	Status InvoiceStatus
	Count  int64
	Amount float64
}

// InvoiceSummary aggregates the invoices of a contract by status.
type InvoiceSummary struct {
	ContractID int64
	Totals     []StatusTotal
}

// Total returns the summed amount across all statuses.
func (s *InvoiceSummary) Total() float64 {
	var total float64
	for _, t := range s.Totals {
		total += t.Amount
	}
	return total
}

// InvoiceEvent describes a committed status change.
type InvoiceEvent struct {
	InvoiceID     int64         `json:"invoice_id"`
	PublicationID string        `json:"publication_id"`
	ContractID    int64         `json:"contract_id"`
	From          InvoiceStatus `json:"from"`
	To            InvoiceStatus `json:"to"`
	Amount        float64       `json:"amount"`
	OccurredAt    time.Time     `json:"occurred_at"`
}
