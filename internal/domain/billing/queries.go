package billing

import "time"

// Sort orders
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Page holds pagination and ordering shared by every list query.
// SortBy is restricted per query to a column whitelist.
type Page struct {
	Limit     int    `validate:"omitempty,min=1,max=1000"`
	Offset    int    `validate:"omitempty,min=0"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// SiteQuery filters sites.
type SiteQuery struct {
	Page
	// Name keeps sites whose name contains it, ignoring case
	Name        string  `validate:"omitempty,max=100"`
	Techno      Techno  `validate:"omitempty,techno"`
	MinCapacity float64 `validate:"omitempty,gte=0"`
	SortBy      string  `validate:"omitempty,oneof=id name capacity techno"`
}

// NewSiteQuery returns an unfiltered site query
func NewSiteQuery() *SiteQuery {
	return &SiteQuery{}
}

// Validate for validating SiteQuery struct
func (q *SiteQuery) Validate() error {
	return validateStruct(q)
}

// ContractQuery filters contracts.
type ContractQuery struct {
	Page
	SiteID int64 `validate:"omitempty,gt=0"`
	// PurchaseOrder keeps contracts whose purchase order contains it, ignoring case
	PurchaseOrder string `validate:"omitempty,max=50"`
	// ActiveOn keeps contracts whose period covers that day
	ActiveOn time.Time `validate:"-"`
	SortBy   string    `validate:"omitempty,oneof=id purchase_order start_date end_date"`
}

// NewContractQuery returns an unfiltered contract query
func NewContractQuery() *ContractQuery {
	return &ContractQuery{}
}

// Validate for validating ContractQuery struct
func (q *ContractQuery) Validate() error {
	return validateStruct(q)
}

// InvoiceQuery filters invoices.
type InvoiceQuery struct {
	Page
	ContractID int64         `validate:"omitempty,gt=0"`
	Status     InvoiceStatus `validate:"omitempty,invoice_status"`
	IssuedFrom time.Time     `validate:"-"`
	IssuedTo   time.Time     `validate:"-"`
	SortBy     string        `validate:"omitempty,oneof=id publication_id issued_at amount status"`
}

// NewInvoiceQuery returns an unfiltered invoice query
func NewInvoiceQuery() *InvoiceQuery {
	return &InvoiceQuery{}
}

// Validate for validating InvoiceQuery struct
func (q *InvoiceQuery) Validate() error {
	if err := validateStruct(q); err != nil {
		return err
	}
	if !q.IssuedFrom.IsZero() && !q.IssuedTo.IsZero() && q.IssuedTo.Before(q.IssuedFrom) {
		return validationError("issued_to must not precede issued_from")
	}
	return nil
}
