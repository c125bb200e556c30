// cmd/sitebill-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	v1 "github.com/sitebill/sitebill/internal/api/rest/v1"
	"github.com/sitebill/sitebill/internal/app"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/sitebill/sitebill/internal/infrastructure/connector"
	"github.com/sitebill/sitebill/internal/infrastructure/persistence"
	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/sitebill/sitebill/internal/pkg/logger"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(context.Background(), restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db        *gorm.DB
	publisher billing.InvoiceEventPublisher
	services  *appServices
}

type appServices struct {
	sites     billing.SiteService
	contracts billing.ContractService
	invoices  billing.InvoiceService
}

func (d *appDependencies) close(log logger.Logger) {
	if err := d.publisher.Close(); err != nil {
		log.Warn("failed to close invoice event publisher", "error", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("failed to close database", "error", err)
	}
}

// connectDB opens the configured database
var connectDB = persistence.NewDBConnection

// initializeDependencies sets up all application components. The database is
// closed again when a later component fails.
func initializeDependencies(ctx context.Context, cfg *config.RestConfig, log logger.Logger) (deps *appDependencies, err error) {
	// Initialize database
	db, err := connectDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() {
		if err != nil {
			if closeErr := persistence.CloseDB(db); closeErr != nil {
				log.Warn("failed to close database", "error", closeErr)
			}
		}
	}()

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully", "type", cfg.Database.Type)

	uow, err := persistence.NewGormUnitOfWork(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit of work: %w", err)
	}

	// Initialize connectors
	publisher, err := connector.NewInvoiceEventPublisher(ctx, &cfg.Events, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice event publisher: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(uow, publisher, log)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:        db,
		publisher: publisher,
		services:  services,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.sites,
		deps.services.contracts,
		deps.services.invoices,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port, "basePath", v1.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(uow billing.UnitOfWork, publisher billing.InvoiceEventPublisher, log logger.Logger) (*appServices, error) {
	siteService, err := app.NewSiteService(uow, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create site service: %w", err)
	}

	contractService, err := app.NewContractService(uow, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract service: %w", err)
	}

	invoiceService, err := app.NewInvoiceService(uow, publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		sites:     siteService,
		contracts: contractService,
		invoices:  invoiceService,
	}, nil
}
