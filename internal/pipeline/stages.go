package pipeline

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesprep/salesprep/internal/ingest"
	"github.com/salesprep/salesprep/internal/model"
)

// ErrNoInput is returned when there is nothing to concatenate.
var ErrNoInput = errors.New("no input files")

// Concat appends the records of every table in order. Duplicates are kept.
func Concat(tables []model.Table) ([]model.Record, error) {
	if len(tables) == 0 {
		return nil, ErrNoInput
	}

	n := 0
	for _, t := range tables {
		n += len(t.Records)
	}

	combined := make([]model.Record, 0, n)
	for _, t := range tables {
		combined = append(combined, t.Records...)
	}
	return combined, nil
}

// FilterProduct returns the records whose normalized product equals product
// after the same normalization.
func FilterProduct(records []model.Record, product string) []model.Record {
	target := ingest.NormalizeProduct(product)

	var kept []model.Record
	for _, r := range records {
		if r.Product == target {
			kept = append(kept, r)
		}
	}
	return kept
}

// Derive computes sales and projects each record to the output columns.
func Derive(records []model.Record) []model.OutputRow {
	rows := make([]model.OutputRow, len(records))
	for i, r := range records {
		rows[i] = r.Output()
	}
	return rows
}

// SortByDate returns a copy of rows in ascending date order. Rows with equal
// dates keep their relative order.
func SortByDate(rows []model.OutputRow) []model.OutputRow {
	sorted := make([]model.OutputRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Summary holds the statistics printed after a run.
type Summary struct {
	Rows         int
	HasDates     bool
	FirstDate    time.Time
	LastDate     time.Time
	Regions      []string // distinct, in first-seen order
	TotalSales   decimal.Decimal
	MissingSales int // rows whose sales could not be computed
}

// Summarize computes statistics over rows. Missing sales are left out of the
// total.
func Summarize(rows []model.OutputRow) Summary {
	s := Summary{Rows: len(rows), TotalSales: decimal.Zero}
	seen := make(map[string]bool)

	for _, r := range rows {
		if !s.HasDates || r.Date.Before(s.FirstDate) {
			s.FirstDate = r.Date
		}
		if !s.HasDates || r.Date.After(s.LastDate) {
			s.LastDate = r.Date
		}
		s.HasDates = true

		if !seen[r.Region] {
			seen[r.Region] = true
			s.Regions = append(s.Regions, r.Region)
		}

		if r.Sales.Valid {
			s.TotalSales = s.TotalSales.Add(r.Sales.Decimal)
		} else {
			s.MissingSales++
		}
	}
	return s
}
