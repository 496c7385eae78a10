package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesprep/salesprep/internal/model"
)

// Header is the CSV header for formatted_output.csv.
const Header = "sales,date,region"

const (
	numFields  = 3
	dateFormat = "2006-01-02"
	colSales   = 0
	colDate    = 1
	colRegion  = 2
)

// Columns returns the output column names in order.
func Columns() []string {
	return strings.Split(Header, ",")
}

// MarshalRow converts an OutputRow to a CSV row. Missing sales become an
// empty cell.
func MarshalRow(row model.OutputRow) []string {
	rec := make([]string, numFields)
	if row.Sales.Valid {
		rec[colSales] = FormatSales(row.Sales.Decimal)
	}
	rec[colDate] = row.Date.Format(dateFormat)
	rec[colRegion] = row.Region
	return rec
}

// FormatSales renders d in its shortest form with at least one fractional
// digit: 6 -> "6.0", 7.50 -> "7.5".
func FormatSales(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// UnmarshalRow converts a CSV row back to an OutputRow.
func UnmarshalRow(rec []string) (model.OutputRow, error) {
	if len(rec) != numFields {
		return model.OutputRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	date, err := time.Parse(dateFormat, rec[colDate])
	if err != nil {
		return model.OutputRow{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}

	var sales decimal.NullDecimal
	if rec[colSales] != "" {
		d, err := decimal.NewFromString(rec[colSales])
		if err != nil {
			return model.OutputRow{}, fmt.Errorf("parsing sales %q: %w", rec[colSales], err)
		}
		sales = decimal.NewNullDecimal(d)
	}

	return model.OutputRow{
		Sales:  sales,
		Date:   date,
		Region: rec[colRegion],
	}, nil
}

// WriteRows writes the header followed by rows.
func WriteRows(w io.Writer, rows []model.OutputRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRows reads rows written by WriteRows.
func ReadRows(r io.Reader) ([]model.OutputRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading output CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []model.OutputRow
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save writes rows to path, creating parent directories and truncating any
// existing file.
func Save(path string, rows []model.OutputRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := WriteRows(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
