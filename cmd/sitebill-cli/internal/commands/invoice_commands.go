package commands

import (
	"fmt"
	"time"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"github.com/spf13/cobra"
)

// InvoiceCommandHandler manages contract invoices via CLI
type InvoiceCommandHandler struct {
	*commandHandler
}

// NewInvoiceCommandHandler initializes an InvoiceCommandHandler with the CLI config and logger
func NewInvoiceCommandHandler() (*InvoiceCommandHandler, error) {
	base, err := newCommandHandler()
	if err != nil {
		return nil, err
	}
	return &InvoiceCommandHandler{commandHandler: base}, nil
}

// CreateInvoiceCmd issues a draft invoice
func (h *InvoiceCommandHandler) CreateInvoiceCmd(cmd *cobra.Command, _ []string) error {
	contractID, err := cmd.Flags().GetInt64("contract-id")
	if err != nil {
		return fmt.Errorf("invalid contract-id flag: %w", err)
	}
	amount, err := cmd.Flags().GetFloat64("amount")
	if err != nil {
		return fmt.Errorf("invalid amount flag: %w", err)
	}
	publicationID, err := cmd.Flags().GetString("publication-id")
	if err != nil {
		return fmt.Errorf("invalid publication-id flag: %w", err)
	}
	issuedAt, err := cmd.Flags().GetString("issued-at")
	if err != nil {
		return fmt.Errorf("invalid issued-at flag: %w", err)
	}

	invoice := &billing.Invoice{PublicationID: publicationID, Amount: amount, ContractID: contractID}
	if issuedAt != "" {
		t, err := time.Parse(time.RFC3339, issuedAt)
		if err != nil {
			return fmt.Errorf("%w: issued-at must be RFC3339", billing.ErrValidation)
		}
		invoice.IssuedAt = t.UTC()
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		created, err := s.invoices.Create(cmd.Context(), invoice)
		if err != nil {
			return err
		}
		printInvoice(cmd, created)
		return nil
	})
}

// ListInvoicesCmd lists invoices matching the filter flags
func (h *InvoiceCommandHandler) ListInvoicesCmd(cmd *cobra.Command, _ []string) error {
	query := billing.NewInvoiceQuery()

	page, sortBy, err := readPage(cmd)
	if err != nil {
		return err
	}
	query.Page = page
	query.SortBy = sortBy

	if query.ContractID, err = cmd.Flags().GetInt64("contract-id"); err != nil {
		return fmt.Errorf("invalid contract-id flag: %w", err)
	}
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		return fmt.Errorf("invalid status flag: %w", err)
	}
	query.Status = billing.InvoiceStatus(status)

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		invoices, err := s.invoices.List(cmd.Context(), query)
		if err != nil {
			return err
		}
		for _, invoice := range invoices {
			printInvoice(cmd, invoice)
		}
		return nil
	})
}

// TransitionInvoiceCmd moves an invoice to another status
func (h *InvoiceCommandHandler) TransitionInvoiceCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		return fmt.Errorf("invalid status flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		invoice, err := s.invoices.Transition(cmd.Context(), id, billing.InvoiceStatus(status))
		if err != nil {
			return err
		}
		printInvoice(cmd, invoice)
		return nil
	})
}

// PublishInvoicesCmd publishes computed invoices, all or none
func (h *InvoiceCommandHandler) PublishInvoicesCmd(cmd *cobra.Command, _ []string) error {
	ids, err := cmd.Flags().GetInt64Slice("ids")
	if err != nil {
		return fmt.Errorf("invalid ids flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		invoices, err := s.invoices.PublishBatch(cmd.Context(), ids)
		if err != nil {
			return err
		}
		for _, invoice := range invoices {
			printInvoice(cmd, invoice)
		}
		return nil
	})
}

// SummaryCmd totals the invoices of a contract by status
func (h *InvoiceCommandHandler) SummaryCmd(cmd *cobra.Command, _ []string) error {
	contractID, err := cmd.Flags().GetInt64("contract-id")
	if err != nil {
		return fmt.Errorf("invalid contract-id flag: %w", err)
	}

	return h.withServices(cmd.Context(), func(s *billingServices) error {
		summary, err := s.invoices.Summary(cmd.Context(), contractID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, total := range summary.Totals {
			fmt.Fprintf(out, "%s\t%d\t%.2f\n", total.Status, total.Count, total.Amount)
		}
		fmt.Fprintf(out, "total\t\t%.2f\n", summary.Total())
		return nil
	})
}

// InitInvoiceCommands registers the invoices command group
func InitInvoiceCommands(rootCmd *cobra.Command) error {
	handler, err := NewInvoiceCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create invoice command handler: %w", err)
	}

	var invoicesCmd = &cobra.Command{
		Use:   "invoices",
		Short: "Manage contract invoices",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Issue a draft invoice",
		RunE:  handler.CreateInvoiceCmd,
	}
	createCmd.Flags().Int64("contract-id", 0, "Contract id")
	createCmd.Flags().Float64("amount", 0, "Invoice amount")
	createCmd.Flags().String("publication-id", "", "Publication id (generated when empty)")
	createCmd.Flags().String("issued-at", "", "Issue time in RFC3339 (now when empty)")
	invoicesCmd.AddCommand(createCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE:  handler.ListInvoicesCmd,
	}
	listCmd.Flags().Int64("contract-id", 0, "Filter by contract")
	listCmd.Flags().String("status", "", "Filter by status")
	addPageFlags(listCmd)
	invoicesCmd.AddCommand(listCmd)

	var transitionCmd = &cobra.Command{
		Use:   "transition",
		Short: "Change the status of an invoice",
		RunE:  handler.TransitionInvoiceCmd,
	}
	transitionCmd.Flags().Int64("id", 0, "Invoice id")
	transitionCmd.Flags().String("status", "", "Target status (draft, computed, error, published, paid)")
	invoicesCmd.AddCommand(transitionCmd)

	var publishCmd = &cobra.Command{
		Use:   "publish",
		Short: "Publish computed invoices in one transaction",
		RunE:  handler.PublishInvoicesCmd,
	}
	publishCmd.Flags().Int64Slice("ids", nil, "Invoice ids, comma separated")
	invoicesCmd.AddCommand(publishCmd)

	var summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Total the invoices of a contract by status",
		RunE:  handler.SummaryCmd,
	}
	summaryCmd.Flags().Int64("contract-id", 0, "Contract id")
	invoicesCmd.AddCommand(summaryCmd)

	rootCmd.AddCommand(invoicesCmd)
	return nil
}

func printInvoice(cmd *cobra.Command, invoice *billing.Invoice) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f\t%s\tcontract %d\n",
		invoice.ID, invoice.PublicationID, invoice.IssuedAt.Format(time.RFC3339),
		invoice.Amount, invoice.Status, invoice.ContractID)
}
