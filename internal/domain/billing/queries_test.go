//go:build unit
// +build unit

package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueries_Validate(t *testing.T) {
	tests := []struct {
		name      string
		validate  func() error
		shouldErr bool
	}{
		{"empty site query", NewSiteQuery().Validate, false},
		{"site sort by capacity", (&SiteQuery{SortBy: "capacity", Page: Page{SortOrder: SortDesc}}).Validate, false},
		{"site sort by unknown column", (&SiteQuery{SortBy: "name; DROP TABLE sites"}).Validate, true},
		{"site unknown techno", (&SiteQuery{Techno: "nuclear"}).Validate, true},
		{"site bad sort order", (&SiteQuery{Page: Page{SortOrder: "sideways"}}).Validate, true},
		{"site limit too big", (&SiteQuery{Page: Page{Limit: 5000}}).Validate, true},
		{"empty contract query", NewContractQuery().Validate, false},
		{"contract sort by start", (&ContractQuery{SortBy: "start_date"}).Validate, false},
		{"contract sort by unknown", (&ContractQuery{SortBy: "site"}).Validate, true},
		{"empty invoice query", NewInvoiceQuery().Validate, false},
		{"invoice status filter", (&InvoiceQuery{Status: InvoiceStatusPaid}).Validate, false},
		{"invoice unknown status", (&InvoiceQuery{Status: "lost"}).Validate, true},
		{"invoice inverted window", (&InvoiceQuery{IssuedFrom: date(2024, 2, 1), IssuedTo: date(2024, 1, 1)}).Validate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if tt.shouldErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
