package billing

import "context"

// SiteRepository defines the interface for Site-related operations
type SiteRepository interface {
	// Create adds a new Site to the database and sets its ID
	Create(ctx context.Context, site *Site) error
	// List lists Sites in the database with optional filter
	List(ctx context.Context, query *SiteQuery) ([]*Site, error)
	// GetByID retrieves a Site from the database by ID
	GetByID(ctx context.Context, siteID int64) (*Site, error)
	// GetWithContracts retrieves a Site and its contracts
	GetWithContracts(ctx context.Context, siteID int64) (*Site, error)
	// UpdateByID updates a Site in the database by ID
	UpdateByID(ctx context.Context, site *Site) error
	// DeleteByID deletes a Site in the database by ID
	DeleteByID(ctx context.Context, siteID int64) error
}

// ContractRepository defines the interface for Contract-related operations
type ContractRepository interface {
	Create(ctx context.Context, contract *Contract) error
	List(ctx context.Context, query *ContractQuery) ([]*Contract, error)
	// GetByID retrieves a Contract together with its Site
	GetByID(ctx context.Context, contractID int64) (*Contract, error)
	UpdateByID(ctx context.Context, contract *Contract) error
	DeleteByID(ctx context.Context, contractID int64) error
	// CountBySite counts the contracts signed on a site
	CountBySite(ctx context.Context, siteID int64) (int64, error)
}

// InvoiceRepository defines the interface for Invoice-related operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	List(ctx context.Context, query *InvoiceQuery) ([]*Invoice, error)
	GetByID(ctx context.Context, invoiceID int64) (*Invoice, error)
	UpdateByID(ctx context.Context, invoice *Invoice) error
	DeleteByID(ctx context.Context, invoiceID int64) error
	// CountByContract counts the invoices issued under a contract
	CountByContract(ctx context.Context, contractID int64) (int64, error)
	// SumByStatus aggregates the invoices of a contract per status
	SumByStatus(ctx context.Context, contractID int64) ([]StatusTotal, error)
}

// Repositories groups the repositories bound to one database handle.
type Repositories struct {
	Sites     SiteRepository
	Contracts ContractRepository
	Invoices  InvoiceRepository
}

// UnitOfWork runs a set of repository operations atomically.
type UnitOfWork interface {
	// Repositories returns repositories outside of any transaction
	Repositories() Repositories
	// Do runs fn inside a transaction. A nil return commits; an error or a
	// panic rolls back.
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// InvoiceEventPublisher forwards committed invoice status changes.
type InvoiceEventPublisher interface {
	Publish(ctx context.Context, event InvoiceEvent) error
	Close() error
}

// SiteService defines the site management use cases.
type SiteService interface {
	Create(ctx context.Context, site *Site) (*Site, error)
	List(ctx context.Context, query *SiteQuery) ([]*Site, error)
	// GetByID retrieves a site, with its contracts when withContracts is set
	GetByID(ctx context.Context, siteID int64, withContracts bool) (*Site, error)
	Update(ctx context.Context, site *Site) (*Site, error)
	// DeleteByID deletes a site. Sites still referenced by contracts are refused.
	DeleteByID(ctx context.Context, siteID int64) error
}

// ContractService defines the contract management use cases.
type ContractService interface {
	Create(ctx context.Context, contract *Contract) (*Contract, error)
	List(ctx context.Context, query *ContractQuery) ([]*Contract, error)
	GetByID(ctx context.Context, contractID int64) (*Contract, error)
	Update(ctx context.Context, contract *Contract) (*Contract, error)
	// DeleteByID deletes a contract. Contracts with invoices are refused.
	DeleteByID(ctx context.Context, contractID int64) error
	// Onboard creates a site and its first contract in one transaction.
	Onboard(ctx context.Context, site *Site, contract *Contract) (*Contract, error)
}

// InvoiceService defines the invoicing use cases.
type InvoiceService interface {
	// Create issues a draft invoice under an existing contract
	Create(ctx context.Context, invoice *Invoice) (*Invoice, error)
	List(ctx context.Context, query *InvoiceQuery) ([]*Invoice, error)
	GetByID(ctx context.Context, invoiceID int64) (*Invoice, error)
	UpdateAmount(ctx context.Context, invoiceID int64, amount float64) (*Invoice, error)
	// DeleteByID deletes an invoice that is still a draft
	DeleteByID(ctx context.Context, invoiceID int64) error
	Transition(ctx context.Context, invoiceID int64, status InvoiceStatus) (*Invoice, error)
	// PublishBatch publishes computed invoices, all or none
	PublishBatch(ctx context.Context, invoiceIDs []int64) ([]*Invoice, error)
	Summary(ctx context.Context, contractID int64) (*InvoiceSummary, error)
}
