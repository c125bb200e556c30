//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_Create(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)

	invoice, err := services.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: 320})
	require.NoError(t, err)
	assert.NotZero(t, invoice.ID)
	assert.NotEmpty(t, invoice.PublicationID)
	assert.Equal(t, billing.InvoiceStatusDraft, invoice.Status)
	assert.WithinDuration(t, time.Now().UTC(), invoice.IssuedAt, time.Minute)
}

func TestInvoiceService_Create_NormalizesIssuedAtToUTC(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)

	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	invoice, err := services.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: 5, IssuedAt: issued})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, invoice.IssuedAt.Location())

	found, err := services.InvoiceService.List(context.Background(), &billing.InvoiceQuery{
		IssuedFrom: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		IssuedTo:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, invoice.ID, found[0].ID)
}

func TestInvoiceService_Create_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		invoice func(contractID int64) *billing.Invoice
		wantErr error
	}{
		{
			name: "unknown contract",
			invoice: func(int64) *billing.Invoice {
				return &billing.Invoice{ContractID: 404, Amount: 1}
			},
			wantErr: billing.ErrNotFound,
		},
		{
			name: "non draft status",
			invoice: func(contractID int64) *billing.Invoice {
				return &billing.Invoice{ContractID: contractID, Amount: 1, Status: billing.InvoiceStatusPaid}
			},
			wantErr: billing.ErrValidation,
		},
		{
			name: "negative amount",
			invoice: func(contractID int64) *billing.Invoice {
				return &billing.Invoice{ContractID: contractID, Amount: -5}
			},
			wantErr: billing.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := SetupTestServices(t, config.SqliteDbType)
			_, contract := persistence.SeedChain(t, services.DBContext)

			_, err := services.InvoiceService.Create(context.Background(), tt.invoice(contract.ID))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInvoiceService_Transition(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	invoice := services.CreateComputedInvoice(t, contract, 100)

	published, err := services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPublished, published.Status)

	paid, err := services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, paid.Status)

	_, err = services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusDraft)
	assert.ErrorIs(t, err, billing.ErrInvalidTransition)

	events := services.Publisher.Events()
	require.Len(t, events, 3)
	assert.Equal(t, billing.InvoiceStatusDraft, events[0].From)
	assert.Equal(t, billing.InvoiceStatusComputed, events[0].To)
	assert.Equal(t, billing.InvoiceStatusPaid, events[2].To)
	assert.Equal(t, invoice.PublicationID, events[2].PublicationID)
}

func TestInvoiceService_Transition_PublisherFailureKeepsChange(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	invoice, err := services.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: 1})
	require.NoError(t, err)

	services.Publisher.Fail = true
	_, err = services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusError)
	require.NoError(t, err)

	fetched, err := services.InvoiceService.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusError, fetched.Status)
}

func TestInvoiceService_UpdateAmount(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	invoice := services.CreateComputedInvoice(t, contract, 100)

	updated, err := services.InvoiceService.UpdateAmount(context.Background(), invoice.ID, 140)
	require.NoError(t, err)
	assert.Equal(t, 140.0, updated.Amount)

	_, err = services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusPublished)
	require.NoError(t, err)

	_, err = services.InvoiceService.UpdateAmount(context.Background(), invoice.ID, 1)
	assert.ErrorIs(t, err, billing.ErrNotEditable)

	fetched, err := services.InvoiceService.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, 140.0, fetched.Amount)
}

func TestInvoiceService_DeleteByID_OnlyDraft(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	invoice := services.CreateComputedInvoice(t, contract, 100)

	err := services.InvoiceService.DeleteByID(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, billing.ErrNotEditable)

	_, err = services.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusDraft)
	require.NoError(t, err)
	require.NoError(t, services.InvoiceService.DeleteByID(context.Background(), invoice.ID))

	assert.ErrorIs(t, services.InvoiceService.DeleteByID(context.Background(), invoice.ID), billing.ErrNotFound)
}

func TestInvoiceService_PublishBatch(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	first := services.CreateComputedInvoice(t, contract, 100)
	second := services.CreateComputedInvoice(t, contract, 200)
	eventsBefore := len(services.Publisher.Events())

	published, err := services.InvoiceService.PublishBatch(context.Background(), []int64{first.ID, second.ID, first.ID})
	require.NoError(t, err)
	require.Len(t, published, 2)
	for _, invoice := range published {
		assert.Equal(t, billing.InvoiceStatusPublished, invoice.Status)
	}
	assert.Len(t, services.Publisher.Events(), eventsBefore+2)
}

func TestInvoiceService_PublishBatch_AllOrNothing(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	computed := services.CreateComputedInvoice(t, contract, 100)
	draft, err := services.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: 5})
	require.NoError(t, err)
	eventsBefore := len(services.Publisher.Events())

	_, err = services.InvoiceService.PublishBatch(context.Background(), []int64{computed.ID, draft.ID})
	assert.ErrorIs(t, err, billing.ErrInvalidTransition)

	fetched, err := services.InvoiceService.GetByID(context.Background(), computed.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusComputed, fetched.Status)
	assert.Len(t, services.Publisher.Events(), eventsBefore)

	_, err = services.InvoiceService.PublishBatch(context.Background(), []int64{computed.ID, 9999})
	assert.ErrorIs(t, err, billing.ErrNotFound)

	_, err = services.InvoiceService.PublishBatch(context.Background(), nil)
	assert.ErrorIs(t, err, billing.ErrValidation)
}

func TestInvoiceService_Summary(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, contract := persistence.SeedChain(t, services.DBContext)
	services.CreateComputedInvoice(t, contract, 100)
	services.CreateComputedInvoice(t, contract, 50)
	_, err := services.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: 25})
	require.NoError(t, err)

	summary, err := services.InvoiceService.Summary(context.Background(), contract.ID)
	require.NoError(t, err)
	require.Len(t, summary.Totals, len(billing.InvoiceStatuses))
	assert.Equal(t, 175.0, summary.Total())

	assert.Equal(t, billing.InvoiceStatusDraft, summary.Totals[0].Status)
	assert.Equal(t, int64(1), summary.Totals[0].Count)
	assert.Equal(t, billing.InvoiceStatusComputed, summary.Totals[1].Status)
	assert.Equal(t, 150.0, summary.Totals[1].Amount)
	assert.Zero(t, summary.Totals[4].Count)

	_, err = services.InvoiceService.Summary(context.Background(), 12345)
	assert.ErrorIs(t, err, billing.ErrNotFound)
}

func TestSeeder_Seed(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	report, err := services.Seeder.Seed(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Sites)
	assert.GreaterOrEqual(t, report.Contracts, 5)
	assert.GreaterOrEqual(t, report.Invoices, report.Contracts)

	sites, err := services.SiteService.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, sites, 5)

	invoices, err := services.InvoiceService.List(context.Background(), &billing.InvoiceQuery{Page: billing.Page{Limit: 1000}})
	require.NoError(t, err)
	assert.Len(t, invoices, report.Invoices)

	_, err = services.Seeder.Seed(context.Background(), 0)
	assert.ErrorIs(t, err, billing.ErrValidation)
}

func TestSeeder_Seed_TwiceOnSameDatabase(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	logger := testutil.SetupTestLogger(t)

	var sites int
	for run := 0; run < 2; run++ {
		seeder, err := NewSeeder(services.DBContext.UnitOfWork, 1, logger)
		require.NoError(t, err)

		report, err := seeder.Seed(context.Background(), 10)
		require.NoError(t, err, "run %d", run+1)
		sites += report.Sites
	}

	listed, err := services.SiteService.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, listed, sites)
}
