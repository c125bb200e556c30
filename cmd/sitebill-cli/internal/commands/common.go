package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sitebill/sitebill/internal/app"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/connector"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigPathEnv names the optional YAML configuration file
const ConfigPathEnv = "CONFIG_PATH"

func loadConfig() (*config.CliConfig, error) {
	cfg, err := config.InitializeCliConfig(os.Getenv(ConfigPathEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// commandHandler carries what every command group needs
type commandHandler struct {
	cfg    *config.CliConfig
	logger logger.Logger
}

func newCommandHandler() (*commandHandler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &commandHandler{cfg: cfg, logger: loggerInstance}, nil
}

// billingServices is opened per command invocation
type billingServices struct {
	uow       billing.UnitOfWork
	sites     billing.SiteService
	contracts billing.ContractService
	invoices  billing.InvoiceService
}

// withServices connects to the database, migrates the schema and runs fn
// against the billing services, closing every resource afterwards
func (h *commandHandler) withServices(ctx context.Context, fn func(s *billingServices) error) error {
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

	uow, err := persistence.NewGormUnitOfWork(db, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create unit of work: %w", err)
	}

	publisher, err := connector.NewInvoiceEventPublisher(ctx, &h.cfg.Events, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create invoice event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			h.logger.Warn("failed to close invoice event publisher", "error", err)
		}
	}()

	siteService, err := app.NewSiteService(uow, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create site service: %w", err)
	}
	contractService, err := app.NewContractService(uow, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create contract service: %w", err)
	}
	invoiceService, err := app.NewInvoiceService(uow, publisher, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create invoice service: %w", err)
	}

	return fn(&billingServices{
		uow:       uow,
		sites:     siteService,
		contracts: contractService,
		invoices:  invoiceService,
	})
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "Maximum number of rows (0 for no limit)")
	cmd.Flags().Int("offset", 0, "Number of rows to skip")
	cmd.Flags().String("sort-by", "", "Column to sort by")
	cmd.Flags().String("sort-order", billing.SortAsc, "Sort order (asc or desc)")
}

func readPage(cmd *cobra.Command) (billing.Page, string, error) {
	var page billing.Page
	var err error

	if page.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return page, "", fmt.Errorf("invalid limit flag: %w", err)
	}
	if page.Offset, err = cmd.Flags().GetInt("offset"); err != nil {
		return page, "", fmt.Errorf("invalid offset flag: %w", err)
	}
	if page.SortOrder, err = cmd.Flags().GetString("sort-order"); err != nil {
		return page, "", fmt.Errorf("invalid sort-order flag: %w", err)
	}
	sortBy, err := cmd.Flags().GetString("sort-by")
	if err != nil {
		return page, "", fmt.Errorf("invalid sort-by flag: %w", err)
	}
	return page, sortBy, nil
}

func optionalDate(cmd *cobra.Command, name string) (time.Time, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value == "" {
		return time.Time{}, nil
	}
	return billing.ParseDate(value)
}
