package commands

import (
	"fmt"
	"os"

	"github.com/sitebill/sitebill/internal/app"
	"github.com/sitebill/sitebill/internal/domain/provisioning"
	"github.com/sitebill/sitebill/internal/infrastructure/provisioner"

	"github.com/spf13/cobra"
)

// ProvisionCommandHandler bootstraps the host environment
type ProvisionCommandHandler struct {
	*commandHandler
}

// NewProvisionCommandHandler initializes a ProvisionCommandHandler with the CLI config and logger
func NewProvisionCommandHandler() (*ProvisionCommandHandler, error) {
	base, err := newCommandHandler()
	if err != nil {
		return nil, err
	}
	return &ProvisionCommandHandler{commandHandler: base}, nil
}

func (h *ProvisionCommandHandler) plan(cmd *cobra.Command) (provisioning.Plan, error) {
	settings := h.cfg.Provision

	requirements, err := cmd.Flags().GetString("requirements")
	if err != nil {
		return provisioning.Plan{}, fmt.Errorf("invalid requirements flag: %w", err)
	}
	if requirements != "" {
		settings.RequirementsFile = requirements
	}

	return provisioning.DefaultPlan(settings), nil
}

// ProvisionCmd runs the bootstrap plan and exits with the status of the
// failing command, 1 when a command could not run at all
func (h *ProvisionCommandHandler) ProvisionCmd(cmd *cobra.Command, _ []string) {
	plan, err := h.plan(cmd)
	if err != nil {
		h.logger.Error(err)
		os.Exit(1)
	}

	service, err := app.NewProvisioningService(provisioner.NewExecRunner("", h.logger), cmd.OutOrStdout(), cmd.ErrOrStderr(), h.logger)
	if err != nil {
		h.logger.Error(err)
		os.Exit(1)
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		h.logger.Error("invalid dry-run flag ", err)
		os.Exit(1)
	}
	if dryRun {
		for _, line := range service.DryRun(plan) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return
	}

	report, err := service.Run(cmd.Context(), plan)
	if err != nil {
		h.logger.Error("provisioning failed", "error", err)
		os.Exit(provisioning.ExitCode(err))
	}
	h.logger.Info("provisioning completed", "steps", len(report.Results))
}

// InitProvisionCommands registers the provision command
func InitProvisionCommands(rootCmd *cobra.Command) error {
	handler, err := NewProvisionCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create provision command handler: %w", err)
	}

	var provisionCmd = &cobra.Command{
		Use:   "provision",
		Short: "Install the system packages and Python requirements",
		Run:   handler.ProvisionCmd,
	}
	provisionCmd.Flags().String("requirements", "", "Path to the pip requirements file (overrides the configured one)")
	provisionCmd.Flags().Bool("dry-run", false, "Print the commands without running them")
	rootCmd.AddCommand(provisionCmd)

	return nil
}
