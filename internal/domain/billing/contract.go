package billing

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of contract dates.
const DateLayout = "2006-01-02"

// Contract is a purchase agreement covering the production of one site
// between StartDate and EndDate, both inclusive.
type Contract struct {
	ID            int64
	PurchaseOrder string    `validate:"required,min=1,max=50"`
	StartDate     time.Time `validate:"required"`
	EndDate       time.Time `validate:"required,gtefield=StartDate"`
	SiteID        int64     `validate:"gt=0"`

	Site     *Site      `validate:"-"`
	Invoices []*Invoice `validate:"-"`
}

// Validate for validating Contract struct
func (c *Contract) Validate() error {
	return validateStruct(c)
}

// Normalize truncates both dates to midnight UTC.
func (c *Contract) Normalize() {
	c.StartDate = ToDate(c.StartDate)
	c.EndDate = ToDate(c.EndDate)
}

// Covers reports whether day falls within the contract period.
func (c *Contract) Covers(day time.Time) bool {
	d := ToDate(day)
	return !d.Before(ToDate(c.StartDate)) && !d.After(ToDate(c.EndDate))
}

func (c *Contract) String() string {
	return c.PurchaseOrder
}

// GoString renders the contract for %#v.
func (c *Contract) GoString() string {
	return fmt.Sprintf("<Contract n°%d - %s>", c.ID, c.String())
}

// ToDate drops the clock part of t, keeping its calendar day in t's location.
func ToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected %s", ErrValidation, s, DateLayout)
	}
	return t, nil
}
