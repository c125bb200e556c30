package commands

import (
	"fmt"

	"github.com/sitebill/sitebill/internal/app"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// DatabaseCommandHandler migrates and seeds the billing database
type DatabaseCommandHandler struct {
	*commandHandler
}

// NewDatabaseCommandHandler initializes a DatabaseCommandHandler with the CLI config and logger
func NewDatabaseCommandHandler() (*DatabaseCommandHandler, error) {
	base, err := newCommandHandler()
	if err != nil {
		return nil, err
	}
	return &DatabaseCommandHandler{commandHandler: base}, nil
}

// MigrateCmd creates or updates the schema
func (h *DatabaseCommandHandler) MigrateCmd(_ *cobra.Command, _ []string) error {
	db, err := persistence.NewDBConnection(h.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			h.logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := persistence.Migrate(db); err != nil {
		return err
	}
	h.logger.Info("database migrations completed", "type", h.cfg.Database.Type)
	return nil
}

// SeedCmd fills the database with fake sites, contracts and invoices
func (h *DatabaseCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("invalid count flag: %w", err)
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return fmt.Errorf("invalid seed flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		seeder, err := app.NewSeeder(s.uow, seed, h.logger)
		if err != nil {
			return err
		}
		report, err := seeder.Seed(cmd.Context(), count)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d site(s), %d contract(s), %d invoice(s)\n",
			report.Sites, report.Contracts, report.Invoices)
		return nil
	})
}

// InitDatabaseCommands registers the migrate and seed commands
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	handler, err := NewDatabaseCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create database command handler: %w", err)
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Insert fake sites, contracts and invoices",
		RunE:  handler.SeedCmd,
	}
	seedCmd.Flags().Int("count", 10, "Number of sites to create")
	seedCmd.Flags().Int64("seed", 0, "Random seed for names, amounts and dates (0 for a random one)")
	rootCmd.AddCommand(seedCmd)

	return nil
}
