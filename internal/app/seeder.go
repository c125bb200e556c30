package app

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/pkg/logger"
)

// SeedReport counts the rows written by a seeding run
type SeedReport struct {
	Sites     int
	Contracts int
	Invoices  int
}

// Seeder fills the database with fake but valid sites, contracts and invoices
type Seeder struct {
	uow    billing.UnitOfWork
	faker  *gofakeit.Faker
	logger logger.Logger
}

// NewSeeder creates a Seeder. Equal seeds produce equal names, amounts and
// dates; seed 0 picks a random one. Unique keys always come from fresh UUIDs
// so repeated runs against one database never collide.
func NewSeeder(uow billing.UnitOfWork, seed int64, logger logger.Logger) (*Seeder, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &Seeder{
		uow:    uow,
		faker:  gofakeit.New(seed),
		logger: logger,
	}, nil
}

// Seed writes n sites, each with one to three contracts carrying one to four
// invoices, in a single transaction
func (s *Seeder) Seed(ctx context.Context, n int) (*SeedReport, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: site count must be positive", billing.ErrValidation)
	}

	report := &SeedReport{}
	err := s.uow.Do(ctx, func(repos billing.Repositories) error {
		for i := 0; i < n; i++ {
			site := s.fakeSite()
			if err := repos.Sites.Create(ctx, site); err != nil {
				return err
			}
			report.Sites++

			for c := s.faker.Number(1, 3); c > 0; c-- {
				contract := s.fakeContract(site)
				if err := repos.Contracts.Create(ctx, contract); err != nil {
					return err
				}
				report.Contracts++

				for v := s.faker.Number(1, 4); v > 0; v-- {
					if err := repos.Invoices.Create(ctx, s.fakeInvoice(contract)); err != nil {
						return err
					}
					report.Invoices++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	s.logger.Info("database seeded", "sites", report.Sites, "contracts", report.Contracts, "invoices", report.Invoices)
	return report, nil
}

func (s *Seeder) fakeSite() *billing.Site {
	return &billing.Site{
		Name:     fmt.Sprintf("%s %s", s.faker.City(), uuid.New().String()[:8]),
		Capacity: float64(s.faker.Number(50, 50000)),
		Techno:   billing.Technos[s.faker.Number(0, len(billing.Technos)-1)],
	}
}

func (s *Seeder) fakeContract(site *billing.Site) *billing.Contract {
	start := s.faker.DateRange(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	return &billing.Contract{
		PurchaseOrder: fmt.Sprintf("PO-%s", uuid.New().String()),
		StartDate:     billing.ToDate(start),
		EndDate:       billing.ToDate(start.AddDate(s.faker.Number(1, 15), 0, 0)),
		SiteID:        site.ID,
	}
}

func (s *Seeder) fakeInvoice(contract *billing.Contract) *billing.Invoice {
	return &billing.Invoice{
		PublicationID: uuid.New().String(),
		IssuedAt:      s.faker.DateRange(contract.StartDate, contract.EndDate).UTC().Truncate(time.Second),
		Amount:        s.faker.Float64Range(100, 250000),
		Status:        billing.InvoiceStatuses[s.faker.Number(0, len(billing.InvoiceStatuses)-1)],
		ContractID:    contract.ID,
	}
}
