package persistence

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence/models"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormInvoiceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormInvoiceRepository creates a new GORM-based InvoiceRepository implementation
func NewGormInvoiceRepository(db *gorm.DB, logger logger.Logger) (billing.InvoiceRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &gormInvoiceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.InvoiceModel{}
	model.FromDomain(invoice)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "failed to create invoice")
	}
	invoice.ID = model.ID
	invoice.IssuedAt = model.IssuedAt

	r.logger.Info("invoice created", "invoice_id", invoice.ID, "publication_id", invoice.PublicationID, "contract_id", invoice.ContractID)
	return nil
}

func (r *gormInvoiceRepository) List(ctx context.Context, query *billing.InvoiceQuery) ([]*billing.Invoice, error) {
	if query == nil {
		query = billing.NewInvoiceQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	if query.ContractID > 0 {
		dbQuery = dbQuery.Where("contract_id = ?", query.ContractID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if !query.IssuedFrom.IsZero() {
		dbQuery = dbQuery.Where("issued_at >= ?", query.IssuedFrom.UTC())
	}
	if !query.IssuedTo.IsZero() {
		dbQuery = dbQuery.Where("issued_at <= ?", query.IssuedTo.UTC())
	}

	dbQuery = applyPage(dbQuery, query.Page, query.SortBy)

	var modelList []*models.InvoiceModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, translateError(err, "failed to fetch invoices")
	}

	domainList := make([]*billing.Invoice, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormInvoiceRepository) GetByID(ctx context.Context, invoiceID int64) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("id = ?", invoiceID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("invoice with ID %d", invoiceID))
	}
	return model.ToDomain(), nil
}

func (r *gormInvoiceRepository) UpdateByID(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.InvoiceModel{}
	model.FromDomain(invoice)

	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("id = ?", invoice.ID).
		Select("publication_id", "amount", "status", "contract_id").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "failed to update invoice")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice with ID %d: %w", invoice.ID, billing.ErrNotFound)
	}

	r.logger.Info("invoice updated", "invoice_id", invoice.ID, "status", string(invoice.Status))
	return nil
}

func (r *gormInvoiceRepository) DeleteByID(ctx context.Context, invoiceID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", invoiceID).Delete(&models.InvoiceModel{})
	if result.Error != nil {
		return translateError(result.Error, "failed to delete invoice")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice with ID %d: %w", invoiceID, billing.ErrNotFound)
	}

	r.logger.Info("invoice deleted", "invoice_id", invoiceID)
	return nil
}

func (r *gormInvoiceRepository) CountByContract(ctx context.Context, contractID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("contract_id = ?", contractID).Count(&count).Error; err != nil {
		return 0, translateError(err, "failed to count invoices")
	}
	return count, nil
}

func (r *gormInvoiceRepository) SumByStatus(ctx context.Context, contractID int64) ([]billing.StatusTotal, error) {
	var rows []struct {
		Status string
		Count  int64
		Amount float64
	}

	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("contract_id = ?", contractID).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "failed to sum invoices")
	}

	totals := make([]billing.StatusTotal, len(rows))
	for i, row := range rows {
		totals[i] = billing.StatusTotal{
			Status: billing.InvoiceStatus(row.Status),
			Count:  row.Count,
			Amount: row.Amount,
		}
	}
	return totals, nil
}
