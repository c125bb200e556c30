package persistence

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence/models"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSiteRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSiteRepository creates a new GORM-based SiteRepository implementation
func NewGormSiteRepository(db *gorm.DB, logger logger.Logger) (billing.SiteRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &gormSiteRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSiteRepository) Create(ctx context.Context, site *billing.Site) error {
	if err := site.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SiteModel{}
	model.FromDomain(site)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "failed to create site")
	}
	site.ID = model.ID

	r.logger.Info("site created", "site_id", site.ID, "name", site.Name)
	return nil
}

func (r *gormSiteRepository) List(ctx context.Context, query *billing.SiteQuery) ([]*billing.Site, error) {
	if query == nil {
		query = billing.NewSiteQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.SiteModel{})

	if query.Name != "" {
		dbQuery = whereContains(dbQuery, "name", query.Name)
	}
	if query.Techno != "" {
		dbQuery = dbQuery.Where("techno = ?", string(query.Techno))
	}
	if query.MinCapacity > 0 {
		dbQuery = dbQuery.Where("capacity >= ?", query.MinCapacity)
	}

	dbQuery = applyPage(dbQuery, query.Page, query.SortBy)

	var modelList []*models.SiteModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, translateError(err, "failed to fetch sites")
	}

	domainList := make([]*billing.Site, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSiteRepository) GetByID(ctx context.Context, siteID int64) (*billing.Site, error) {
	var model models.SiteModel
	if err := r.db.WithContext(ctx).Where("id = ?", siteID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("site with ID %d", siteID))
	}
	return model.ToDomain(), nil
}

func (r *gormSiteRepository) GetWithContracts(ctx context.Context, siteID int64) (*billing.Site, error) {
	var model models.SiteModel
	err := r.db.WithContext(ctx).
		Preload("Contracts", func(db *gorm.DB) *gorm.DB { return db.Order("start_date asc") }).
		Where("id = ?", siteID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("site with ID %d", siteID))
	}

	// an empty preload still means "loaded"
	if model.Contracts == nil {
		model.Contracts = []models.ContractModel{}
	}
	return model.ToDomain(), nil
}

func (r *gormSiteRepository) UpdateByID(ctx context.Context, site *billing.Site) error {
	if err := site.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SiteModel{}
	model.FromDomain(site)

	result := r.db.WithContext(ctx).Model(&models.SiteModel{}).Where("id = ?", site.ID).
		Select("name", "capacity", "techno").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "failed to update site")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("site with ID %d: %w", site.ID, billing.ErrNotFound)
	}

	r.logger.Info("site updated", "site_id", site.ID)
	return nil
}

func (r *gormSiteRepository) DeleteByID(ctx context.Context, siteID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", siteID).Delete(&models.SiteModel{})
	if result.Error != nil {
		return translateError(result.Error, "failed to delete site")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("site with ID %d: %w", siteID, billing.ErrNotFound)
	}

	r.logger.Info("site deleted", "site_id", siteID)
	return nil
}
