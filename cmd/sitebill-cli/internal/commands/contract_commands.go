package commands

import (
	"fmt"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"github.com/spf13/cobra"
)

// ContractCommandHandler manages site contracts via CLI
type ContractCommandHandler struct {
	*commandHandler
}

// NewContractCommandHandler initializes a ContractCommandHandler with the CLI config and logger
func NewContractCommandHandler() (*ContractCommandHandler, error) {
	base, err := newCommandHandler()
	if err != nil {
		return nil, err
	}
	return &ContractCommandHandler{commandHandler: base}, nil
}

// CreateContractCmd signs a contract on an existing site
func (h *ContractCommandHandler) CreateContractCmd(cmd *cobra.Command, _ []string) error {
	siteID, err := cmd.Flags().GetInt64("site-id")
	if err != nil {
		return fmt.Errorf("invalid site-id flag: %w", err)
	}
	purchaseOrder, err := cmd.Flags().GetString("purchase-order")
	if err != nil {
		return fmt.Errorf("invalid purchase-order flag: %w", err)
	}
	start, err := optionalDate(cmd, "start-date")
	if err != nil {
		return err
	}
	end, err := optionalDate(cmd, "end-date")
	if err != nil {
		return err
	}

	contract := &billing.Contract{PurchaseOrder: purchaseOrder, StartDate: start, EndDate: end, SiteID: siteID}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		created, err := s.contracts.Create(cmd.Context(), contract)
		if err != nil {
			return err
		}
		printContract(cmd, created)
		return nil
	})
}

// ListContractsCmd lists contracts matching the filter flags
func (h *ContractCommandHandler) ListContractsCmd(cmd *cobra.Command, _ []string) error {
	query := billing.NewContractQuery()

	page, sortBy, err := readPage(cmd)
	if err != nil {
		return err
	}
	query.Page = page
	query.SortBy = sortBy

	if query.SiteID, err = cmd.Flags().GetInt64("site-id"); err != nil {
		return fmt.Errorf("invalid site-id flag: %w", err)
	}
	if query.PurchaseOrder, err = cmd.Flags().GetString("purchase-order"); err != nil {
		return fmt.Errorf("invalid purchase-order flag: %w", err)
	}
	if query.ActiveOn, err = optionalDate(cmd, "active-on"); err != nil {
		return err
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		contracts, err := s.contracts.List(cmd.Context(), query)
		if err != nil {
			return err
		}
		for _, contract := range contracts {
			printContract(cmd, contract)
		}
		return nil
	})
}

// GetContractCmd prints a contract and its site
func (h *ContractCommandHandler) GetContractCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		contract, err := s.contracts.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		printContract(cmd, contract)
		if contract.Site != nil {
			fmt.Fprint(cmd.OutOrStdout(), "  ")
			printSite(cmd, contract.Site)
		}
		return nil
	})
}

// DeleteContractCmd deletes a contract without invoices
func (h *ContractCommandHandler) DeleteContractCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		if err := s.contracts.DeleteByID(cmd.Context(), id); err != nil {
			return err
		}
		h.logger.Info("contract deleted", "id", id)
		return nil
	})
}

// InitContractCommands registers the contracts command group
func InitContractCommands(rootCmd *cobra.Command) error {
	handler, err := NewContractCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create contract command handler: %w", err)
	}

	var contractsCmd = &cobra.Command{
		Use:   "contracts",
		Short: "Manage site contracts",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Sign a contract on a site",
		RunE:  handler.CreateContractCmd,
	}
	createCmd.Flags().Int64("site-id", 0, "Site id")
	createCmd.Flags().String("purchase-order", "", "Purchase order reference")
	createCmd.Flags().String("start-date", "", "First day of the contract (YYYY-MM-DD)")
	createCmd.Flags().String("end-date", "", "Last day of the contract (YYYY-MM-DD)")
	contractsCmd.AddCommand(createCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		RunE:  handler.ListContractsCmd,
	}
	listCmd.Flags().Int64("site-id", 0, "Filter by site")
	listCmd.Flags().String("purchase-order", "", "Keep contracts whose purchase order contains this text, ignoring case")
	listCmd.Flags().String("active-on", "", "Keep contracts covering this day (YYYY-MM-DD)")
	addPageFlags(listCmd)
	contractsCmd.AddCommand(listCmd)

	var getCmd = &cobra.Command{
		Use:   "get",
		Short: "Show a contract",
		RunE:  handler.GetContractCmd,
	}
	getCmd.Flags().Int64("id", 0, "Contract id")
	contractsCmd.AddCommand(getCmd)

	var deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete a contract without invoices",
		RunE:  handler.DeleteContractCmd,
	}
	deleteCmd.Flags().Int64("id", 0, "Contract id")
	contractsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(contractsCmd)
	return nil
}

func printContract(cmd *cobra.Command, contract *billing.Contract) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s..%s\tsite %d\n",
		contract.ID, contract.PurchaseOrder,
		contract.StartDate.Format(billing.DateLayout), contract.EndDate.Format(billing.DateLayout),
		contract.SiteID)
}
