package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table holds the records loaded from a single input file, in file order.
type Table struct {
	Name    string
	Path    string
	Records []Record
}

// OutputRow is a row of formatted_output.csv.
type OutputRow struct {
	Sales  decimal.NullDecimal // invalid when price or quantity was missing
	Date   time.Time
	Region string
}
