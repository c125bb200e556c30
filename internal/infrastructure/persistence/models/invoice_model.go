package models

import (
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"
)

// InvoiceModel is the GORM database model for invoices
type InvoiceModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	PublicationID string    `gorm:"not null;uniqueIndex;type:varchar(50)"`
	IssuedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Amount        float64   `gorm:"not null"`
	Status        string    `gorm:"not null;index;type:varchar(50)"`
	ContractID    int64     `gorm:"not null;index"`

	Contract *ContractModel `gorm:"foreignKey:ContractID"`
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts GORM model to domain entity
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		ID:            m.ID,
		PublicationID: m.PublicationID,
		IssuedAt:      m.IssuedAt.UTC(),
		Amount:        m.Amount,
		Status:        billing.InvoiceStatus(m.Status),
		ContractID:    m.ContractID,
	}

	if m.Contract != nil {
		invoice.Contract = m.Contract.ToDomain()
	}

	return invoice
}

// FromDomain converts domain entity to GORM model
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.ID = i.ID
	m.PublicationID = i.PublicationID
	// sqlite keeps timestamps as text, so range filters only hold in one zone
	m.IssuedAt = i.IssuedAt.UTC()
	m.Amount = i.Amount
	m.Status = string(i.Status)
	m.ContractID = i.ContractID
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{&SiteModel{}, &ContractModel{}, &InvoiceModel{}}
}
