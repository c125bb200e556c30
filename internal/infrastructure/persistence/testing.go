//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestCapacitySmall = 250.0
	TestCapacityLarge = 12000.0

	TestPostgresDSN      = "user=postgres password=postgres host=localhost port=5432 sslmode=disable"
	TestPostgresAdminDSN = "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	UnitOfWork   billing.UnitOfWork
	SiteRepo     billing.SiteRepository
	ContractRepo billing.ContractRepository
	InvoiceRepo  billing.InvoiceRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  TestPostgresDSN,
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			_ = DropDatabase(TestPostgresAdminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	uow, err := NewGormUnitOfWork(db, log)
	require.NoError(t, err, "Failed to create unit of work")

	repos := uow.Repositories()
	return &TestContext{
		DB:           db,
		UnitOfWork:   uow,
		SiteRepo:     repos.Sites,
		ContractRepo: repos.Contracts,
		InvoiceRepo:  repos.Invoices,
	}
}

// CreateTestSite builds a valid site with a unique name
func CreateTestSite(t *testing.T, name string) *billing.Site {
	t.Helper()

	if name == "" {
		name = "site-" + uuid.NewString()[:8]
	}

	return &billing.Site{
		Name:     name,
		Capacity: TestCapacitySmall,
		Techno:   billing.TechnoSolarFieldRooftop,
	}
}

// CreateTestContract builds a contract on site covering the whole of 2024
func CreateTestContract(t *testing.T, site *billing.Site, purchaseOrder string) *billing.Contract {
	t.Helper()

	if purchaseOrder == "" {
		purchaseOrder = "PO-" + uuid.NewString()[:8]
	}

	return &billing.Contract{
		PurchaseOrder: purchaseOrder,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		SiteID:        site.ID,
	}
}

// CreateTestInvoice builds a draft invoice under contract
func CreateTestInvoice(t *testing.T, contract *billing.Contract, amount float64) *billing.Invoice {
	t.Helper()

	return &billing.Invoice{
		PublicationID: uuid.NewString(),
		IssuedAt:      time.Now().UTC().Truncate(time.Second),
		Amount:        amount,
		Status:        billing.InvoiceStatusDraft,
		ContractID:    contract.ID,
	}
}

// SeedChain persists a site, a contract on it and returns both
func SeedChain(t *testing.T, ctx *TestContext) (*billing.Site, *billing.Contract) {
	t.Helper()

	site := CreateTestSite(t, "")
	require.NoError(t, ctx.SiteRepo.Create(context.Background(), site))

	contract := CreateTestContract(t, site, "")
	require.NoError(t, ctx.ContractRepo.Create(context.Background(), contract))

	return site, contract
}
