package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// InvoiceHandler defines the interface for handling invoice-related operations
type InvoiceHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateAmount(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Transition(ctx *gin.Context)
	PublishBatch(ctx *gin.Context)
}

type invoiceHandler struct {
	invoiceService billing.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService billing.InvoiceService) InvoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create handles the POST request to issue a draft invoice
// @Summary Create a draft invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param requestBody body InvoiceRequest true "Invoice"
// @Success 201 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices [post]
func (handler *invoiceHandler) Create(ctx *gin.Context) {
	var request InvoiceRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid invoice data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	invoice, err := handler.invoiceService.Create(ctx, request.ToDomain())
	if err != nil {
		abortWithError(ctx, "error creating invoice", err)
		return
	}

	ctx.JSON(http.StatusCreated, newInvoiceResponse(invoice))
}

// List handles the GET request to list invoices
// @Summary List invoices
// @Tags Invoice
// @Produce json
// @Param contractId query int false "Contract ID"
// @Param status query string false "Invoice status"
// @Param issuedFrom query string false "Issued at or after (RFC3339)"
// @Param issuedTo query string false "Issued at or before (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Router /invoices [get]
func (handler *invoiceHandler) List(ctx *gin.Context) {
	query := billing.NewInvoiceQuery()
	query.Status = billing.InvoiceStatus(ctx.Query("status"))

	parser := newQueryParser(ctx)
	parser.int64Param("contractId", &query.ContractID)
	parser.timeParam("issuedFrom", &query.IssuedFrom)
	parser.timeParam("issuedTo", &query.IssuedTo)
	parser.page(&query.Page, &query.SortBy)
	if parser.err != nil {
		abortBadRequest(ctx, "%v", parser.err)
		return
	}

	if err := query.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	invoices, err := handler.invoiceService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, "list query failed", err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceListResponse(invoices))
}

// GetByID handles the GET request to retrieve an invoice
// @Summary Retrieve an invoice by ID
// @Tags Invoice
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id} [get]
func (handler *invoiceHandler) GetByID(ctx *gin.Context) {
	invoiceID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	invoice, err := handler.invoiceService.GetByID(ctx, invoiceID)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("invoice with id %d", invoiceID), err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// UpdateAmount handles the PUT request changing the amount of an invoice
// @Summary Update the amount of an invoice
// @Description Only draft, computed and error invoices are editable.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param requestBody body UpdateAmountRequest true "Amount"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /invoices/{id} [put]
func (handler *invoiceHandler) UpdateAmount(ctx *gin.Context) {
	invoiceID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	var request UpdateAmountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid invoice data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	invoice, err := handler.invoiceService.UpdateAmount(ctx, invoiceID, *request.Amount)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("error updating invoice with id %d", invoiceID), err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// DeleteByID handles the DELETE request to remove a draft invoice
// @Summary Delete a draft invoice by ID
// @Tags Invoice
// @Param id path int true "Invoice ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /invoices/{id} [delete]
func (handler *invoiceHandler) DeleteByID(ctx *gin.Context) {
	invoiceID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	if err := handler.invoiceService.DeleteByID(ctx, invoiceID); err != nil {
		abortWithError(ctx, fmt.Sprintf("error deleting invoice with id %d", invoiceID), err)
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted invoice with id %d", invoiceID)})
}

// Transition handles the PATCH request moving an invoice to another status
// @Summary Change the status of an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param requestBody body TransitionRequest true "Target status"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /invoices/{id}/status [patch]
func (handler *invoiceHandler) Transition(ctx *gin.Context) {
	invoiceID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	var request TransitionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid status data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	invoice, err := handler.invoiceService.Transition(ctx, invoiceID, billing.InvoiceStatus(request.Status))
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("error changing status of invoice with id %d", invoiceID), err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// PublishBatch handles the POST request publishing several computed invoices
// @Summary Publish computed invoices
// @Description Either every listed invoice is published or none is.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param requestBody body PublishBatchRequest true "Invoice IDs"
// @Success 200 {array} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /invoices/publish [post]
func (handler *invoiceHandler) PublishBatch(ctx *gin.Context) {
	var request PublishBatchRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid publication data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	invoices, err := handler.invoiceService.PublishBatch(ctx, request.IDs)
	if err != nil {
		abortWithError(ctx, "error publishing invoices", err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceListResponse(invoices))
}
