//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteModel_ToDomain_WithContracts(t *testing.T) {
	siteModel := &SiteModel{
		ID:       1,
		Name:     "Plateau Nord",
		Capacity: 4200,
		Techno:   string(billing.TechnoWindTurbineOnshore),
		Contracts: []ContractModel{
			{ID: 10, PurchaseOrder: "PO-10", SiteID: 1},
		},
	}

	site := siteModel.ToDomain()

	assert.Equal(t, int64(1), site.ID)
	assert.Equal(t, "Plateau Nord", site.Name)
	assert.Equal(t, 4200.0, site.Capacity)
	assert.Equal(t, billing.TechnoWindTurbineOnshore, site.Techno)
	require.Len(t, site.Contracts, 1)
	assert.Equal(t, "PO-10", site.Contracts[0].PurchaseOrder)
}

func TestSiteModel_ToDomain_NoContractsLoaded(t *testing.T) {
	site := (&SiteModel{ID: 1, Name: "Solo"}).ToDomain()
	assert.Nil(t, site.Contracts)
}

func TestSiteModel_FromDomain_SkipsAssociations(t *testing.T) {
	site := &billing.Site{
		ID:        2,
		Name:      "Toit Sud",
		Capacity:  80,
		Techno:    billing.TechnoSolarFieldRooftop,
		Contracts: []*billing.Contract{{PurchaseOrder: "PO-1"}},
	}

	model := &SiteModel{}
	model.FromDomain(site)

	assert.Equal(t, site.ID, model.ID)
	assert.Equal(t, "solar_field_rooftop", model.Techno)
	assert.Nil(t, model.Contracts)
}

func TestContractModel_RoundTripsDates(t *testing.T) {
	contract := &billing.Contract{
		ID:            3,
		PurchaseOrder: "PO-3",
		StartDate:     time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		SiteID:        1,
	}

	model := &ContractModel{}
	model.FromDomain(contract)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), model.StartDate)

	model.Site = &SiteModel{ID: 1, Name: "Plateau Nord"}
	back := model.ToDomain()
	assert.Equal(t, "PO-3", back.PurchaseOrder)
	assert.Equal(t, model.StartDate, back.StartDate)
	assert.Equal(t, contract.EndDate, back.EndDate)
	require.NotNil(t, back.Site)
	assert.Equal(t, "Plateau Nord", back.Site.Name)
}

func TestInvoiceModel_Conversion(t *testing.T) {
	issuedAt := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	invoice := &billing.Invoice{
		ID:            4,
		PublicationID: "PUB-4",
		IssuedAt:      issuedAt,
		Amount:        1234.56,
		Status:        billing.InvoiceStatusComputed,
		ContractID:    3,
	}

	model := &InvoiceModel{}
	model.FromDomain(invoice)
	assert.Equal(t, "computed", model.Status)
	assert.Nil(t, model.Contract)

	back := model.ToDomain()
	assert.Equal(t, invoice, back)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "sites", SiteModel{}.TableName())
	assert.Equal(t, "contracts", ContractModel{}.TableName())
	assert.Equal(t, "invoices", InvoiceModel{}.TableName())
	assert.Len(t, All(), 3)
}

func TestInvoiceModel_FromDomain_StoresUTC(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, paris)

	var model InvoiceModel
	model.FromDomain(&billing.Invoice{PublicationID: "INV-TZ", IssuedAt: issued, Status: billing.InvoiceStatusDraft})

	assert.Equal(t, time.UTC, model.IssuedAt.Location())
	assert.Equal(t, 8, model.IssuedAt.Hour())
	assert.True(t, model.IssuedAt.Equal(issued))
}
