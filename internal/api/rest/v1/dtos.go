package v1

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

var validate = validator.New()

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse carries an informational message
type InfoResponse struct {
	Message string `json:"message"`
}

// SiteRequest is the body of site creation and update requests
type SiteRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Capacity float64 `json:"capacity" validate:"gt=0"`
	Techno   string  `json:"techno" validate:"required"`
}

// Validate checks the request fields and the technology name
func (r *SiteRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	if !billing.Techno(r.Techno).IsValid() {
		return fmt.Errorf("unsupported techno %q", r.Techno)
	}
	return nil
}

// ToDomain converts the request into a site
func (r *SiteRequest) ToDomain() *billing.Site {
	return &billing.Site{
		Name:     r.Name,
		Capacity: r.Capacity,
		Techno:   billing.Techno(r.Techno),
	}
}

// ContractTermsRequest holds the purchase order and period of a contract.
// Dates use the YYYY-MM-DD layout.
type ContractTermsRequest struct {
	PurchaseOrder string `json:"purchase_order" validate:"required,max=50"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
}

// Validate checks the terms and parses both dates
func (r *ContractTermsRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	_, _, err := r.period()
	return err
}

func (r *ContractTermsRequest) period() (time.Time, time.Time, error) {
	start, err := billing.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := billing.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %s precedes start_date %s", r.EndDate, r.StartDate)
	}
	return start, end, nil
}

// ToDomain converts the terms into a contract on siteID
func (r *ContractTermsRequest) ToDomain(siteID int64) (*billing.Contract, error) {
	start, end, err := r.period()
	if err != nil {
		return nil, err
	}
	return &billing.Contract{
		PurchaseOrder: r.PurchaseOrder,
		StartDate:     start,
		EndDate:       end,
		SiteID:        siteID,
	}, nil
}

// ContractRequest is the body of contract creation and update requests
type ContractRequest struct {
	ContractTermsRequest
	SiteID int64 `json:"site_id" validate:"gt=0"`
}

// Validate checks the site reference and the terms
func (r *ContractRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	return r.ContractTermsRequest.Validate()
}

// OnboardRequest creates a site together with its first contract
type OnboardRequest struct {
	Site     SiteRequest          `json:"site"`
	Contract ContractTermsRequest `json:"contract"`
}

// Validate checks both parts of the request
func (r *OnboardRequest) Validate() error {
	if err := r.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := r.Contract.Validate(); err != nil {
		return fmt.Errorf("contract: %w", err)
	}
	return nil
}

// InvoiceRequest is the body of invoice creation requests. An empty
// publication id is generated and a missing issue time defaults to now.
type InvoiceRequest struct {
	PublicationID string     `json:"publication_id" validate:"omitempty,max=50"`
	IssuedAt      *time.Time `json:"issued_at"`
	Amount        float64    `json:"amount" validate:"gte=0"`
	ContractID    int64      `json:"contract_id" validate:"gt=0"`
}

// Validate for validating InvoiceRequest struct
func (r *InvoiceRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ToDomain converts the request into a draft invoice
func (r *InvoiceRequest) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		PublicationID: r.PublicationID,
		Amount:        r.Amount,
		ContractID:    r.ContractID,
		Status:        billing.InvoiceStatusDraft,
	}
	if r.IssuedAt != nil {
		invoice.IssuedAt = r.IssuedAt.UTC()
	}
	return invoice
}

// UpdateAmountRequest changes the amount of an invoice
type UpdateAmountRequest struct {
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

// Validate for validating UpdateAmountRequest struct
func (r *UpdateAmountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// TransitionRequest moves an invoice to another status
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate checks that the target status exists
func (r *TransitionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	if !billing.InvoiceStatus(r.Status).IsValid() {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	return nil
}

// PublishBatchRequest lists the invoices to publish together
type PublishBatchRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
}

// Validate for validating PublishBatchRequest struct
func (r *PublishBatchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// SiteResponse describes a site. Contracts are only set when requested.
type SiteResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Capacity  float64            `json:"capacity"`
	Techno    string             `json:"techno"`
	Contracts []ContractResponse `json:"contracts,omitempty"`
}

func newSiteResponse(site *billing.Site) SiteResponse {
	response := SiteResponse{
		ID:       site.ID,
		Name:     site.Name,
		Capacity: site.Capacity,
		Techno:   string(site.Techno),
	}
	if site.Contracts != nil {
		response.Contracts = make([]ContractResponse, len(site.Contracts))
		for i, contract := range site.Contracts {
			response.Contracts[i] = newContractResponse(contract)
		}
	}
	return response
}

// ContractResponse describes a contract, with its site when loaded
type ContractResponse struct {
	ID            int64         `json:"id"`
	PurchaseOrder string        `json:"purchase_order"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	SiteID        int64         `json:"site_id"`
	Site          *SiteResponse `json:"site,omitempty"`
}

func newContractResponse(contract *billing.Contract) ContractResponse {
	response := ContractResponse{
		ID:            contract.ID,
		PurchaseOrder: contract.PurchaseOrder,
		StartDate:     contract.StartDate.Format(billing.DateLayout),
		EndDate:       contract.EndDate.Format(billing.DateLayout),
		SiteID:        contract.SiteID,
	}
	if contract.Site != nil {
		site := newSiteResponse(contract.Site)
		response.Site = &site
	}
	return response
}

// InvoiceResponse describes an invoice
type InvoiceResponse struct {
	ID            int64     `json:"id"`
	PublicationID string    `json:"publication_id"`
	IssuedAt      time.Time `json:"issued_at"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	ContractID    int64     `json:"contract_id"`
}

func newInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID,
		PublicationID: invoice.PublicationID,
		IssuedAt:      invoice.IssuedAt,
		Amount:        invoice.Amount,
		Status:        string(invoice.Status),
		ContractID:    invoice.ContractID,
	}
}

func newInvoiceListResponse(invoices []*billing.Invoice) []InvoiceResponse {
	listResponse := []InvoiceResponse{}
	for _, invoice := range invoices {
		listResponse = append(listResponse, newInvoiceResponse(invoice))
	}
	return listResponse
}

// StatusTotalResponse aggregates the invoices of one status
type StatusTotalResponse struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// SummaryResponse totals the invoices of a contract
type SummaryResponse struct {
	ContractID int64                 `json:"contract_id"`
	Totals     []StatusTotalResponse `json:"totals"`
	Total      float64               `json:"total"`
}

func newSummaryResponse(summary *billing.InvoiceSummary) SummaryResponse {
	response := SummaryResponse{
		ContractID: summary.ContractID,
		Totals:     make([]StatusTotalResponse, len(summary.Totals)),
		Total:      summary.Total(),
	}
	for i, total := range summary.Totals {
		response.Totals[i] = StatusTotalResponse{
			Status: string(total.Status),
			Count:  total.Count,
			Amount: total.Amount,
		}
	}
	return response
}
