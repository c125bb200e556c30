//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence"
	"github.com/sitebill/sitebill/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// RecordingPublisher keeps published events in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	events []billing.InvoiceEvent
	Fail   bool
}

// Publish records event, or fails when Fail is set
func (p *RecordingPublisher) Publish(ctx context.Context, event billing.InvoiceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}

// Close is a no-op
func (p *RecordingPublisher) Close() error { return nil }

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []billing.InvoiceEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]billing.InvoiceEvent(nil), p.events...)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	SiteService     billing.SiteService
	ContractService billing.ContractService
	InvoiceService  billing.InvoiceService
	Seeder          *Seeder

	Publisher *RecordingPublisher
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services on a migrated test database
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	publisher := &RecordingPublisher{}

	siteService, err := NewSiteService(dbContext.UnitOfWork, logger)
	require.NoError(t, err, "Failed to create SiteService")

	contractService, err := NewContractService(dbContext.UnitOfWork, logger)
	require.NoError(t, err, "Failed to create ContractService")

	invoiceService, err := NewInvoiceService(dbContext.UnitOfWork, publisher, logger)
	require.NoError(t, err, "Failed to create InvoiceService")

	seeder, err := NewSeeder(dbContext.UnitOfWork, 42, logger)
	require.NoError(t, err, "Failed to create Seeder")

	return &TestServices{
		SiteService:     siteService,
		ContractService: contractService,
		InvoiceService:  invoiceService,
		Seeder:          seeder,
		Publisher:       publisher,
		DBContext:       dbContext,
	}
}

// CreateComputedInvoice issues an invoice under contract and moves it to computed
func (s *TestServices) CreateComputedInvoice(t *testing.T, contract *billing.Contract, amount float64) *billing.Invoice {
	t.Helper()

	invoice, err := s.InvoiceService.Create(context.Background(), &billing.Invoice{ContractID: contract.ID, Amount: amount})
	require.NoError(t, err)

	invoice, err = s.InvoiceService.Transition(context.Background(), invoice.ID, billing.InvoiceStatusComputed)
	require.NoError(t, err)
	return invoice
}
