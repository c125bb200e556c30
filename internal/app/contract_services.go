package app

import (
	"context"
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// contractService implements the ContractService interface
type contractService struct {
	uow    billing.UnitOfWork
	logger logger.Logger
}

// NewContractService creates a new ContractService instance
func NewContractService(uow billing.UnitOfWork, logger logger.Logger) (billing.ContractService, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &contractService{
		uow:    uow,
		logger: logger,
	}, nil
}

// Create signs a contract on an existing site
func (s *contractService) Create(ctx context.Context, contract *billing.Contract) (*billing.Contract, error) {
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		if _, err := repos.Sites.GetByID(ctx, contract.SiteID); err != nil {
			return err
		}
		return repos.Contracts.Create(ctx, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// List returns the contracts matching query
func (s *contractService) List(ctx context.Context, query *billing.ContractQuery) ([]*billing.Contract, error) {
	contracts, err := s.uow.Repositories().Contracts.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// GetByID retrieves a contract with its site
func (s *contractService) GetByID(ctx context.Context, contractID int64) (*billing.Contract, error) {
	return s.uow.Repositories().Contracts.GetByID(ctx, contractID)
}

// Update overwrites an existing contract. Moving it to another site requires
// that site to exist.
func (s *contractService) Update(ctx context.Context, contract *billing.Contract) (*billing.Contract, error) {
	var updated *billing.Contract
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		if _, err := repos.Sites.GetByID(ctx, contract.SiteID); err != nil {
			return err
		}
		if err := repos.Contracts.UpdateByID(ctx, contract); err != nil {
			return err
		}

		var err error
		updated, err = repos.Contracts.GetByID(ctx, contract.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByID removes a contract under which no invoice was issued
func (s *contractService) DeleteByID(ctx context.Context, contractID int64) error {
	return s.uow.Do(ctx, func(repos billing.Repositories) error {
		if _, err := repos.Contracts.GetByID(ctx, contractID); err != nil {
			return err
		}

		count, err := repos.Invoices.CountByContract(ctx, contractID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("contract %d has %d invoice(s): %w", contractID, count, billing.ErrConflict)
		}

		return repos.Contracts.DeleteByID(ctx, contractID)
	})
}

// Onboard creates site and its first contract atomically. Neither row is
// kept when either insert fails.
func (s *contractService) Onboard(ctx context.Context, site *billing.Site, contract *billing.Contract) (*billing.Contract, error) {
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		if err := repos.Sites.Create(ctx, site); err != nil {
			return err
		}
		contract.SiteID = site.ID
		return repos.Contracts.Create(ctx, contract)
	})
	if err != nil {
		site.ID = 0
		contract.ID = 0
		contract.SiteID = 0
		return nil, fmt.Errorf("failed to onboard site %s: %w", site.Name, err)
	}

	contract.Site = site
	s.logger.Info("site onboarded", "site_id", site.ID, "contract_id", contract.ID)
	return contract, nil
}
