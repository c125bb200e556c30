package models

import (
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// SiteModel is the GORM database model for sites
type SiteModel struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Name     string  `gorm:"not null;uniqueIndex;type:varchar(100)"`
	Capacity float64 `gorm:"not null"`
	Techno   string  `gorm:"not null;index;type:varchar(50)"`

	Contracts []ContractModel `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (SiteModel) TableName() string {
	return "sites"
}

// ToDomain converts GORM model to domain entity. Loaded contracts are
// converted too.
func (m *SiteModel) ToDomain() *billing.Site {
	site := &billing.Site{
		ID:       m.ID,
		Name:     m.Name,
		Capacity: m.Capacity,
		Techno:   billing.Techno(m.Techno),
	}

	if m.Contracts != nil {
		site.Contracts = make([]*billing.Contract, len(m.Contracts))
		for i := range m.Contracts {
			site.Contracts[i] = m.Contracts[i].ToDomain()
		}
	}

	return site
}

// FromDomain converts domain entity to GORM model. Associations are not
// copied so that saving a site never writes its contracts.
func (m *SiteModel) FromDomain(s *billing.Site) {
	m.ID = s.ID
	m.Name = s.Name
	m.Capacity = s.Capacity
	m.Techno = string(s.Techno)
}
