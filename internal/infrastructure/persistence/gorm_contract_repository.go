package persistence

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence/models"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormContractRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormContractRepository creates a new GORM-based ContractRepository implementation
func NewGormContractRepository(db *gorm.DB, logger logger.Logger) (billing.ContractRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &gormContractRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormContractRepository) Create(ctx context.Context, contract *billing.Contract) error {
	contract.Normalize()
	if err := contract.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContractModel{}
	model.FromDomain(contract)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "failed to create contract")
	}
	contract.ID = model.ID

	r.logger.Info("contract created", "contract_id", contract.ID, "purchase_order", contract.PurchaseOrder, "site_id", contract.SiteID)
	return nil
}

func (r *gormContractRepository) List(ctx context.Context, query *billing.ContractQuery) ([]*billing.Contract, error) {
	if query == nil {
		query = billing.NewContractQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ContractModel{})

	if query.SiteID > 0 {
		dbQuery = dbQuery.Where("site_id = ?", query.SiteID)
	}
	if query.PurchaseOrder != "" {
		dbQuery = whereContains(dbQuery, "purchase_order", query.PurchaseOrder)
	}
	if !query.ActiveOn.IsZero() {
		day := billing.ToDate(query.ActiveOn)
		dbQuery = dbQuery.Where("start_date <= ? AND end_date >= ?", day, day)
	}

	dbQuery = applyPage(dbQuery, query.Page, query.SortBy)

	var modelList []*models.ContractModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, translateError(err, "failed to fetch contracts")
	}

	domainList := make([]*billing.Contract, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormContractRepository) GetByID(ctx context.Context, contractID int64) (*billing.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).Preload("Site").Where("id = ?", contractID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("contract with ID %d", contractID))
	}
	return model.ToDomain(), nil
}

func (r *gormContractRepository) UpdateByID(ctx context.Context, contract *billing.Contract) error {
	contract.Normalize()
	if err := contract.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContractModel{}
	model.FromDomain(contract)

	result := r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("id = ?", contract.ID).
		Select("purchase_order", "start_date", "end_date", "site_id").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "failed to update contract")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contract with ID %d: %w", contract.ID, billing.ErrNotFound)
	}

	r.logger.Info("contract updated", "contract_id", contract.ID)
	return nil
}

func (r *gormContractRepository) DeleteByID(ctx context.Context, contractID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", contractID).Delete(&models.ContractModel{})
	if result.Error != nil {
		return translateError(result.Error, "failed to delete contract")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contract with ID %d: %w", contractID, billing.ErrNotFound)
	}

	r.logger.Info("contract deleted", "contract_id", contractID)
	return nil
}

func (r *gormContractRepository) CountBySite(ctx context.Context, siteID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("site_id = ?", siteID).Count(&count).Error; err != nil {
		return 0, translateError(err, "failed to count contracts")
	}
	return count, nil
}
