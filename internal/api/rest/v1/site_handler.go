package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// SiteHandler defines the interface for handling site-related operations
type SiteHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Onboard(ctx *gin.Context)
}

type siteHandler struct {
	siteService     billing.SiteService
	contractService billing.ContractService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService billing.SiteService, contractService billing.ContractService) SiteHandler {
	return &siteHandler{
		siteService:     siteService,
		contractService: contractService,
	}
}

// Create handles the POST request to register a site
// @Summary Create a site
// @Tags Site
// @Accept json
// @Produce json
// @Param requestBody body SiteRequest true "Site"
// @Success 201 {object} SiteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sites [post]
func (handler *siteHandler) Create(ctx *gin.Context) {
	var request SiteRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid site data: %v", err)
		return
	}

	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	site, err := handler.siteService.Create(ctx, request.ToDomain())
	if err != nil {
		abortWithError(ctx, "error creating site", err)
		return
	}

	ctx.JSON(http.StatusCreated, newSiteResponse(site))
}

// List handles the GET request to list sites
// @Summary List sites
// @Tags Site
// @Produce json
// @Param name query string false "Name contains"
// @Param techno query string false "Production technology"
// @Param minCapacity query number false "Minimum capacity in kW"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} SiteResponse
// @Failure 400 {object} ErrorResponse
// @Router /sites [get]
func (handler *siteHandler) List(ctx *gin.Context) {
	query := billing.NewSiteQuery()
	query.Name = ctx.Query("name")
	query.Techno = billing.Techno(ctx.Query("techno"))

	parser := newQueryParser(ctx)
	parser.floatParam("minCapacity", &query.MinCapacity)
	parser.page(&query.Page, &query.SortBy)
	if parser.err != nil {
		abortBadRequest(ctx, "%v", parser.err)
		return
	}

	if err := query.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	sites, err := handler.siteService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, "list query failed", err)
		return
	}

	listResponse := []SiteResponse{}
	for _, site := range sites {
		listResponse = append(listResponse, newSiteResponse(site))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve a site
// @Summary Retrieve a site by ID
// @Tags Site
// @Produce json
// @Param id path int true "Site ID"
// @Param withContracts query bool false "Include the contracts of the site"
// @Success 200 {object} SiteResponse
// @Failure 404 {object} ErrorResponse
// @Router /sites/{id} [get]
func (handler *siteHandler) GetByID(ctx *gin.Context) {
	siteID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	var withContracts bool
	parser := newQueryParser(ctx)
	parser.boolParam("withContracts", &withContracts)
	if parser.err != nil {
		abortBadRequest(ctx, "%v", parser.err)
		return
	}

	site, err := handler.siteService.GetByID(ctx, siteID, withContracts)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("site with id %d", siteID), err)
		return
	}

	ctx.JSON(http.StatusOK, newSiteResponse(site))
}

// Update handles the PUT request to overwrite a site
// @Summary Update a site
// @Tags Site
// @Accept json
// @Produce json
// @Param id path int true "Site ID"
// @Param requestBody body SiteRequest true "Site"
// @Success 200 {object} SiteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sites/{id} [put]
func (handler *siteHandler) Update(ctx *gin.Context) {
	siteID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	var request SiteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid site data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	site := request.ToDomain()
	site.ID = siteID

	updated, err := handler.siteService.Update(ctx, site)
	if err != nil {
		abortWithError(ctx, fmt.Sprintf("error updating site with id %d", siteID), err)
		return
	}

	ctx.JSON(http.StatusOK, newSiteResponse(updated))
}

// DeleteByID handles the DELETE request to remove a site
// @Summary Delete a site by ID
// @Description Sites still referenced by contracts are refused with 409.
// @Tags Site
// @Param id path int true "Site ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sites/{id} [delete]
func (handler *siteHandler) DeleteByID(ctx *gin.Context) {
	siteID, err := pathID(ctx)
	if err != nil {
		abortBadRequest(ctx, "%v", err)
		return
	}

	if err := handler.siteService.DeleteByID(ctx, siteID); err != nil {
		abortWithError(ctx, fmt.Sprintf("error deleting site with id %d", siteID), err)
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted site with id %d", siteID)})
}

// Onboard handles the POST request creating a site and its first contract
// @Summary Onboard a site with its first contract
// @Description Both records are created in one transaction.
// @Tags Site
// @Accept json
// @Produce json
// @Param requestBody body OnboardRequest true "Site and contract"
// @Success 201 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sites/onboard [post]
func (handler *siteHandler) Onboard(ctx *gin.Context) {
	var request OnboardRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, "invalid onboarding data: %v", err)
		return
	}
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	contract, err := request.Contract.ToDomain(0)
	if err != nil {
		abortBadRequest(ctx, "validation failed: %v", err)
		return
	}

	created, err := handler.contractService.Onboard(ctx, request.Site.ToDomain(), contract)
	if err != nil {
		abortWithError(ctx, "error onboarding site", err)
		return
	}

	ctx.JSON(http.StatusCreated, newContractResponse(created))
}
