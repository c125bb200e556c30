package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// ContractHandler defines the interface for handling contract-related operations
type ContractHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Summary(ctx *gin.Context)
}

type contractHandler struct {
	contractService billing.ContractService
	invoiceService  billing.InvoiceService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService billing.ContractService, invoiceService billing.InvoiceService) ContractHandler {
	return &contractHandler{
		contractService: contractService,
		invoiceService:  invoiceService,
	}
}

func bindContractRequest(ctx *gin.Context) (*billing.Contract, bool) {
	var request ContractRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid contract data: %v", err)
		return nil, false
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return nil, false
	}

	contract, err := request.ToDomain(request.SiteID)
	if err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return nil, false
	}
	return contract, true
}

// Create handles the POST request to sign a contract on a site
// @Summary Create a contract
// @Tags Contract
// @Accept json
// @Produce json
// @Param requestBody body ContractRequest true "Contract"
// @Success 201 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts [post]
func (handler *contractHandler) Create(ctx *gin.Context) {
	contract, ok := bindContractRequest(ctx)
	if !ok {
		return
	}

	created, err := handler.contractService.Create(ctx, contract)
	if err != nil {
		abortWithError(ctx, "error creating contract", err)
		return
	}

	ctx.JSON(http.StatusCreated, newContractResponse(created))
}

// List handles the GET request to list contracts
// @Summary List contracts
// @Tags Contract
// @Produce json
// @Param siteId query int false "Site ID"
// @Param purchaseOrder query string false "Purchase order contains"
// @Param activeOn query string false "Day covered by the contract (YYYY-MM-DD)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Router /contracts [get]
func (handler *contractHandler) List(ctx *gin.Context) {
	query := billing.NewContractQuery()
	query.PurchaseOrder = ctx.Query("purchaseOrder")

	parser := newQueryParser(ctx)
	parser.int64Param("siteId", &query.SiteID)
	parser.dateParam("activeOn", &query.ActiveOn)
	parser.page(&query.Page, &query.SortBy)
	if parser.err != nil {
		abortBadRequest(ctx, "%v", parser.err)
		return
	}

	if err := query.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	contracts, err := handler.contractService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, "list query failed", err)
		return
	}

	listResponse := []ContractResponse{}
	for _, contract := range contracts {
		listResponse = append(listResponse, newContractResponse(contract))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve a contract with its site
// @Summary Retrieve a contract by ID
// @Tags Contract
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} ContractResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id} [get]
func (handler *contractHandler) GetByID(ctx *gin.Context) {
	contractID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	contract, err := handler.contractService.GetByID(ctx, contractID)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("contract with id %d", contractID), err)
		return
	}

	ctx.JSON(http.StatusOK, newContractResponse(contract))
}

// Update handles the PUT request to overwrite a contract
// @Summary Update a contract
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path int true "Contract ID"
// @Param requestBody body ContractRequest true "Contract"
// @Success 200 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id} [put]
func (handler *contractHandler) Update(ctx *gin.Context) {
	contractID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	contract, ok := bindContractRequest(ctx)
	if !ok {
		return
	}
	contract.ID = contractID

	updated, err := handler.contractService.Update(ctx, contract)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("error updating contract with id %d", contractID), err)
		return
	}

	ctx.JSON(http.StatusOK, newContractResponse(updated))
}

// DeleteByID handles the DELETE request to remove a contract
// @Summary Delete a contract by ID
// @Description Contracts with invoices are refused with 409.
// @Tags Contract
// @Param id path int true "Contract ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{id} [delete]
func (handler *contractHandler) DeleteByID(ctx *gin.Context) {
	contractID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	if err := handler.contractService.DeleteByID(ctx, contractID); err != nil {
		abortWithError(ctx, fmt.Sprintf("error deleting contract with id %d", contractID), err)
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted contract with id %d", contractID)})
}

// Summary handles the GET request totalling the invoices of a contract
// @Summary Invoice totals of a contract per status
// @Tags Contract
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} SummaryResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id}/summary [get]
func (handler *contractHandler) Summary(ctx *gin.Context) {
	contractID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	summary, err := handler.invoiceService.Summary(ctx, contractID)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("summary of contract with id %d", contractID), err)
		return
	}

	ctx.JSON(http.StatusOK, newSummaryResponse(summary))
}
