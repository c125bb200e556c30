//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"github.com/stretchr/testify/mock"
)

// MockSiteService is a mock implementation of SiteService
type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) Create(ctx context.Context, site *billing.Site) (*billing.Site, error) {
	args := m.Called(ctx, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Site), args.Error(1)
}

func (m *MockSiteService) List(ctx context.Context, query *billing.SiteQuery) ([]*billing.Site, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Site), args.Error(1)
}

func (m *MockSiteService) GetByID(ctx context.Context, siteID int64, withContracts bool) (*billing.Site, error) {
	args := m.Called(ctx, siteID, withContracts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Site), args.Error(1)
}

func (m *MockSiteService) Update(ctx context.Context, site *billing.Site) (*billing.Site, error) {
	args := m.Called(ctx, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Site), args.Error(1)
}

func (m *MockSiteService) DeleteByID(ctx context.Context, siteID int64) error {
	args := m.Called(ctx, siteID)
	return args.Error(0)
}

// MockContractService is a mock implementation of ContractService
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) Create(ctx context.Context, contract *billing.Contract) (*billing.Contract, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractService) List(ctx context.Context, query *billing.ContractQuery) ([]*billing.Contract, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Contract), args.Error(1)
}

func (m *MockContractService) GetByID(ctx context.Context, contractID int64) (*billing.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractService) Update(ctx context.Context, contract *billing.Contract) (*billing.Contract, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractService) DeleteByID(ctx context.Context, contractID int64) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}

func (m *MockContractService) Onboard(ctx context.Context, site *billing.Site, contract *billing.Contract) (*billing.Contract, error) {
	args := m.Called(ctx, site, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

// MockInvoiceService is a mock implementation of InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, invoice *billing.Invoice) (*billing.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, query *billing.InvoiceQuery) ([]*billing.Invoice, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, invoiceID int64) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateAmount(ctx context.Context, invoiceID int64, amount float64) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteByID(ctx context.Context, invoiceID int64) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) Transition(ctx context.Context, invoiceID int64, status billing.InvoiceStatus) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) PublishBatch(ctx context.Context, invoiceIDs []int64) ([]*billing.Invoice, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Summary(ctx context.Context, contractID int64) (*billing.InvoiceSummary, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceSummary), args.Error(1)
}
