package v1

import (
	"github.com/sitebill/sitebill/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	siteService billing.SiteService,
	contractService billing.ContractService,
	invoiceService billing.InvoiceService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Sites Routes
	siteHandler := NewSiteHandler(siteService, contractService)
	v1.POST("/sites", siteHandler.Create)
	v1.GET("/sites", siteHandler.List)
	v1.POST("/sites/onboard", siteHandler.Onboard)
	v1.GET("/sites/:id", siteHandler.GetByID)
	v1.PUT("/sites/:id", siteHandler.Update)
	v1.DELETE("/sites/:id", siteHandler.DeleteByID)

	// Contracts Routes
	contractHandler := NewContractHandler(contractService, invoiceService)
	v1.POST("/contracts", contractHandler.Create)
	v1.GET("/contracts", contractHandler.List)
	v1.GET("/contracts/:id", contractHandler.GetByID)
	v1.PUT("/contracts/:id", contractHandler.Update)
	v1.DELETE("/contracts/:id", contractHandler.DeleteByID)
	v1.GET("/contracts/:id/summary", contractHandler.Summary)

	// Invoices Routes
	invoiceHandler := NewInvoiceHandler(invoiceService)
	v1.POST("/invoices", invoiceHandler.Create)
	v1.GET("/invoices", invoiceHandler.List)
	v1.POST("/invoices/publish", invoiceHandler.PublishBatch)
	v1.GET("/invoices/:id", invoiceHandler.GetByID)
	v1.PUT("/invoices/:id", invoiceHandler.UpdateAmount)
	v1.DELETE("/invoices/:id", invoiceHandler.DeleteByID)
	v1.PATCH("/invoices/:id/status", invoiceHandler.Transition)
}
