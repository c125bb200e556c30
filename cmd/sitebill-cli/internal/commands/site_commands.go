package commands

import (
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"github.com/spf13/cobra"
)

// SiteCommandHandler manages power production sites via CLI
type SiteCommandHandler struct {
	*commandHandler
}

// NewSiteCommandHandler initializes a SiteCommandHandler with the CLI config and logger
func NewSiteCommandHandler() (*SiteCommandHandler, error) {
	base, err := newCommandHandler()
	if err != nil {
		return nil, err
	}
	return &SiteCommandHandler{commandHandler: base}, nil
}

// CreateSiteCmd registers a new site
func (h *SiteCommandHandler) CreateSiteCmd(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("invalid name flag: %w", err)
	}
	capacity, err := cmd.Flags().GetFloat64("capacity")
	if err != nil {
		return fmt.Errorf("invalid capacity flag: %w", err)
	}
	techno, err := cmd.Flags().GetString("techno")
	if err != nil {
		return fmt.Errorf("invalid techno flag: %w", err)
	}

	site := &billing.Site{Name: name, Capacity: capacity, Techno: billing.Techno(techno)}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		created, err := s.sites.Create(cmd.Context(), site)
		if err != nil {
			return err
		}
		printSite(cmd, created)
		return nil
	})
}

// ListSitesCmd lists sites matching the filter flags
func (h *SiteCommandHandler) ListSitesCmd(cmd *cobra.Command, _ []string) error {
	query := billing.NewSiteQuery()

	page, sortBy, err := readPage(cmd)
	if err != nil {
		return err
	}
	query.Page = page
	query.SortBy = sortBy

	if query.Name, err = cmd.Flags().GetString("name"); err != nil {
		return fmt.Errorf("invalid name flag: %w", err)
	}
	techno, err := cmd.Flags().GetString("techno")
	if err != nil {
		return fmt.Errorf("invalid techno flag: %w", err)
	}
	query.Techno = billing.Techno(techno)
	if query.MinCapacity, err = cmd.Flags().GetFloat64("min-capacity"); err != nil {
		return fmt.Errorf("invalid min-capacity flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		sites, err := s.sites.List(cmd.Context(), query)
		if err != nil {
			return err
		}
		for _, site := range sites {
			printSite(cmd, site)
		}
		return nil
	})
}

// GetSiteCmd prints a site, optionally with its contracts
func (h *SiteCommandHandler) GetSiteCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}
	withContracts, err := cmd.Flags().GetBool("with-contracts")
	if err != nil {
		return fmt.Errorf("invalid with-contracts flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		site, err := s.sites.GetByID(cmd.Context(), id, withContracts)
		if err != nil {
			return err
		}
		printSite(cmd, site)
		for _, contract := range site.Contracts {
			fmt.Fprint(cmd.OutOrStdout(), "  ")
			printContract(cmd, contract)
		}
		return nil
	})
}

// DeleteSiteCmd deletes a site without contracts
func (h *SiteCommandHandler) DeleteSiteCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		if err := s.sites.DeleteByID(cmd.Context(), id); err != nil {
			return err
		}
		h.logger.Info("site deleted", "id", id)
		return nil
	})
}

// InitSiteCommands registers the sites command group
func InitSiteCommands(rootCmd *cobra.Command) error {
	handler, err := NewSiteCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create site command handler: %w", err)
	}

	var sitesCmd = &cobra.Command{
		Use:   "sites",
		Short: "Manage power production sites",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Register a site",
		RunE:  handler.CreateSiteCmd,
	}
	createCmd.Flags().String("name", "", "Site name")
	createCmd.Flags().Float64("capacity", 0, "Installed capacity in kW")
	createCmd.Flags().String("techno", "", "Production technology, e.g. wind_turbine_onshore")
	sitesCmd.AddCommand(createCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE:  handler.ListSitesCmd,
	}
	listCmd.Flags().String("name", "", "Keep sites whose name contains this text, ignoring case")
	listCmd.Flags().String("techno", "", "Filter by technology")
	listCmd.Flags().Float64("min-capacity", 0, "Keep sites with at least this capacity")
	addPageFlags(listCmd)
	sitesCmd.AddCommand(listCmd)

	var getCmd = &cobra.Command{
		Use:   "get",
		Short: "Show a site",
		RunE:  handler.GetSiteCmd,
	}
	getCmd.Flags().Int64("id", 0, "Site id")
	getCmd.Flags().Bool("with-contracts", false, "Also list the site's contracts")
	sitesCmd.AddCommand(getCmd)

	var deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete a site without contracts",
		RunE:  handler.DeleteSiteCmd,
	}
	deleteCmd.Flags().Int64("id", 0, "Site id")
	sitesCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(sitesCmd)
	return nil
}

func printSite(cmd *cobra.Command, site *billing.Site) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%g kW\t%s\n", site.ID, site.Name, site.Capacity, site.Techno)
}
