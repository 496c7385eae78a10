package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one sales row after loading and normalization.
type Record struct {
	Product  string              // lowercased, trimmed
	Price    decimal.NullDecimal // invalid when the cell could not be parsed
	Quantity decimal.NullDecimal // invalid when the cell could not be parsed
	Date     time.Time           // calendar date, UTC midnight
	Region   string

	Source string // file name the row came from
	Line   int    // 1-based line number in Source, header is line 1
}

// Sales returns price * quantity. The result is invalid if either factor is.
func (r Record) Sales() decimal.NullDecimal {
	if !r.Price.Valid || !r.Quantity.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.Price.Decimal.Mul(r.Quantity.Decimal))
}

// Output projects the record to the emitted columns.
func (r Record) Output() OutputRow {
	return OutputRow{
		Sales:  r.Sales(),
		Date:   r.Date,
		Region: r.Region,
	}
}
