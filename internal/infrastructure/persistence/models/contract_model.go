package models

import (
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"
)

// ContractModel is the GORM database model for contracts
type ContractModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	PurchaseOrder string    `gorm:"not null;uniqueIndex;type:varchar(50)"`
	StartDate     time.Time `gorm:"not null;type:date"`
	EndDate       time.Time `gorm:"not null;type:date"`
	SiteID        int64     `gorm:"not null;index"`

	Site     *SiteModel     `gorm:"foreignKey:SiteID"`
	Invoices []InvoiceModel `gorm:"foreignKey:ContractID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts GORM model to domain entity
func (m *ContractModel) ToDomain() *billing.Contract {
	contract := &billing.Contract{
		ID:            m.ID,
		PurchaseOrder: m.PurchaseOrder,
		StartDate:     billing.ToDate(m.StartDate),
		EndDate:       billing.ToDate(m.EndDate),
		SiteID:        m.SiteID,
	}

	if m.Site != nil {
		contract.Site = m.Site.ToDomain()
	}

	if m.Invoices != nil {
		contract.Invoices = make([]*billing.Invoice, len(m.Invoices))
		for i := range m.Invoices {
			contract.Invoices[i] = m.Invoices[i].ToDomain()
		}
	}

	return contract
}

// FromDomain converts domain entity to GORM model
func (m *ContractModel) FromDomain(c *billing.Contract) {
	m.ID = c.ID
	m.PurchaseOrder = c.PurchaseOrder
	m.StartDate = billing.ToDate(c.StartDate)
	m.EndDate = billing.ToDate(c.EndDate)
	m.SiteID = c.SiteID
}
