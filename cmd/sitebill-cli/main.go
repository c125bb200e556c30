// Package main is the entry point for the sitebill-cli application.
// It registers the provisioning, database and billing sub-commands and
// executes the command-line interface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	commands "github.com/sitebill/sitebill/cmd/sitebill-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "sitebill-cli",
		Short: "Power site billing CLI tool",
		Long: `sitebill-cli manages power production sites, their contracts and invoices.
It also bootstraps the host environment (system packages and Python requirements).

Configuration is read from the YAML file named by CONFIG_PATH, if set, and from
SITEBILL_* environment variables, e.g. SITEBILL_DATABASE_DSN=/var/lib/sitebill.db.`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Interrupts cancel running commands, e.g. a provisioning step
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitProvisionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize provision commands: %w", err)
	}

	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}

	if err := commands.InitSiteCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize site commands: %w", err)
	}

	if err := commands.InitContractCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize contract commands: %w", err)
	}

	if err := commands.InitInvoiceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize invoice commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
