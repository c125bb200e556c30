package persistence

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db     *gorm.DB
	repos  billing.Repositories
	logger logger.Logger
}

// NewGormUnitOfWork creates a UnitOfWork whose transactions are GORM transactions on db
func NewGormUnitOfWork(db *gorm.DB, logger logger.Logger) (billing.UnitOfWork, error) {
	repos, err := newRepositories(db, logger)
	if err != nil {
		return nil, err
	}
	return &gormUnitOfWork{
		db:     db,
		repos:  repos,
		logger: logger,
	}, nil
}

func newRepositories(db *gorm.DB, logger logger.Logger) (billing.Repositories, error) {
	sites, err := NewGormSiteRepository(db, logger)
	if err != nil {
		return billing.Repositories{}, fmt.Errorf("failed to create site repository: %w", err)
	}
	contracts, err := NewGormContractRepository(db, logger)
	if err != nil {
		return billing.Repositories{}, fmt.Errorf("failed to create contract repository: %w", err)
	}
	invoices, err := NewGormInvoiceRepository(db, logger)
	if err != nil {
		return billing.Repositories{}, fmt.Errorf("failed to create invoice repository: %w", err)
	}
	return billing.Repositories{Sites: sites, Contracts: contracts, Invoices: invoices}, nil
}

func (u *gormUnitOfWork) Repositories() billing.Repositories {
	return u.repos
}

// Do runs fn with repositories bound to a single transaction. gorm rolls back
// when fn returns an error or panics, and commits otherwise.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos billing.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos, err := newRepositories(tx, u.logger)
		if err != nil {
			return err
		}
		return fn(repos)
	})
}
