package app

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// siteService implements the SiteService interface
type siteService struct {
	uow    billing.UnitOfWork
	logger logger.Logger
}

// NewSiteService creates a new SiteService instance
func NewSiteService(uow billing.UnitOfWork, logger logger.Logger) (billing.SiteService, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &siteService{
		uow:    uow,
		logger: logger,
	}, nil
}

// Create persists a new site
func (s *siteService) Create(ctx context.Context, site *billing.Site) (*billing.Site, error) {
	if err := s.uow.Repositories().Sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// List returns the sites matching query
func (s *siteService) List(ctx context.Context, query *billing.SiteQuery) ([]*billing.Site, error) {
	sites, err := s.uow.Repositories().Sites.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

// GetByID retrieves a site, optionally with its contracts
func (s *siteService) GetByID(ctx context.Context, siteID int64, withContracts bool) (*billing.Site, error) {
	repo := s.uow.Repositories().Sites
	if withContracts {
		return repo.GetWithContracts(ctx, siteID)
	}
	return repo.GetByID(ctx, siteID)
}

// Update overwrites the mutable fields of an existing site
func (s *siteService) Update(ctx context.Context, site *billing.Site) (*billing.Site, error) {
	if err := s.uow.Repositories().Sites.UpdateByID(ctx, site); err != nil {
		return nil, err
	}
	return s.uow.Repositories().Sites.GetByID(ctx, site.ID)
}

// DeleteByID removes a site that no contract references
func (s *siteService) DeleteByID(ctx context.Context, siteID int64) error {
	return s.uow.Do(ctx, func(repos billing.Repositories) error {
		if _, err := repos.Sites.GetByID(ctx, siteID); err != nil {
			return err
		}

		count, err := repos.Contracts.CountBySite(ctx, siteID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("site %d is referenced by %d contract(s): %w", siteID, count, billing.ErrConflict)
		}

		return repos.Sites.DeleteByID(ctx, siteID)
	})
}
