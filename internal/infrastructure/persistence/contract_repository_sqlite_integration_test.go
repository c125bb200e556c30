//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	site := CreateTestSite(t, "")
	require.NoError(t, ctx.SiteRepo.Create(context.Background(), site))

	contract := CreateTestContract(t, site, "PO-2024-001")
	contract.StartDate = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	require.NoError(t, ctx.ContractRepo.Create(context.Background(), contract))
	assert.NotZero(t, contract.ID)

	fetched, err := ctx.ContractRepo.GetByID(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-2024-001", fetched.PurchaseOrder)
	assert.True(t, fetched.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, fetched.Site)
	assert.Equal(t, site.Name, fetched.Site.Name)
}

func TestContractSqliteRepository_Create_UnknownSite(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	orphan := CreateTestContract(t, &billing.Site{ID: 4242}, "")

	err := ctx.ContractRepo.Create(context.Background(), orphan)
	assert.ErrorIs(t, err, billing.ErrConflict)
}

func TestContractSqliteRepository_Create_InvertedPeriod(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	site := CreateTestSite(t, "")
	require.NoError(t, ctx.SiteRepo.Create(context.Background(), site))

	contract := CreateTestContract(t, site, "")
	contract.StartDate, contract.EndDate = contract.EndDate, contract.StartDate

	err := ctx.ContractRepo.Create(context.Background(), contract)
	assert.ErrorIs(t, err, billing.ErrValidation)
}

func TestContractSqliteRepository_Create_DuplicatePurchaseOrder(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	site, contract := SeedChain(t, ctx)

	duplicate := CreateTestContract(t, site, contract.PurchaseOrder)
	err := ctx.ContractRepo.Create(context.Background(), duplicate)
	assert.ErrorIs(t, err, billing.ErrConflict)
}

func TestContractSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	site, current := SeedChain(t, ctx)

	next := CreateTestContract(t, site, "PO-NEXT")
	next.StartDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	next.EndDate = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ctx.ContractRepo.Create(context.Background(), next))

	other := CreateTestSite(t, "")
	require.NoError(t, ctx.SiteRepo.Create(context.Background(), other))
	require.NoError(t, ctx.ContractRepo.Create(context.Background(), CreateTestContract(t, other, "")))

	bySite, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{SiteID: site.ID})
	require.NoError(t, err)
	assert.Len(t, bySite, 2)

	active, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{
		SiteID:   site.ID,
		ActiveOn: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)

	lastDay, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{
		ActiveOn: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, lastDay, 1)
	assert.Equal(t, next.ID, lastDay[0].ID)

	byPO, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{PurchaseOrder: "NEXT"})
	require.NoError(t, err)
	require.Len(t, byPO, 1)

	lowerPO, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{PurchaseOrder: "next"})
	require.NoError(t, err)
	require.Len(t, lowerPO, 1)

	wildcard, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{PurchaseOrder: "%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard)

	newestFirst, err := ctx.ContractRepo.List(context.Background(), &billing.ContractQuery{
		SiteID: site.ID,
		SortBy: "start_date",
		Page:   billing.Page{SortOrder: billing.SortDesc},
	})
	require.NoError(t, err)
	require.Len(t, newestFirst, 2)
	assert.Equal(t, next.ID, newestFirst[0].ID)
}

func TestContractSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, contract := SeedChain(t, ctx)

	contract.EndDate = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ctx.ContractRepo.UpdateByID(context.Background(), contract))

	fetched, err := ctx.ContractRepo.GetByID(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.True(t, fetched.EndDate.Equal(contract.EndDate))

	contract.ID = 9999
	assert.ErrorIs(t, ctx.ContractRepo.UpdateByID(context.Background(), contract), billing.ErrNotFound)
}

func TestContractSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	site, contract := SeedChain(t, ctx)

	count, err := ctx.ContractRepo.CountBySite(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, ctx.ContractRepo.DeleteByID(context.Background(), contract.ID))

	count, err = ctx.ContractRepo.CountBySite(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = ctx.ContractRepo.GetByID(context.Background(), contract.ID)
	assert.ErrorIs(t, err, billing.ErrNotFound)
}

func TestContractSqliteRepository_DeleteByID_ReferencedByInvoice(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, contract := SeedChain(t, ctx)
	require.NoError(t, ctx.InvoiceRepo.Create(context.Background(), CreateTestInvoice(t, contract, 100)))

	err := ctx.ContractRepo.DeleteByID(context.Background(), contract.ID)
	assert.ErrorIs(t, err, billing.ErrConflict)
}
