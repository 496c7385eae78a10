package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/salesprep/salesprep/internal/model"
)

const (
	colPrice    = "price"
	colQuantity = "quantity"
	colDate     = "date"
	colProduct  = "product"
	colRegion   = "region"

	currencySymbol = "$"
	utf8BOM        = "\ufeff"
)

// RequiredColumns lists the header names every input file must carry.
var RequiredColumns = []string{colPrice, colQuantity, colDate, colProduct, colRegion}

// MissingColumnError reports required columns absent from a file header.
type MissingColumnError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.Source, strings.Join(e.Columns, ", "))
}

// DateError reports a date cell that could not be parsed.
type DateError struct {
	Source string
	Line   int
	Value  string
	Err    error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s line %d: parsing date %q: %v", e.Source, e.Line, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

var errEmptyDate = errors.New("empty date")

// LoadFile reads and normalizes one input file.
func LoadFile(f FileInfo) (model.Table, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return model.Table{}, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer fh.Close()

	records, err := ReadRecords(fh, f.Name)
	if err != nil {
		return model.Table{}, err
	}
	return model.Table{Name: f.Name, Path: f.Path, Records: records}, nil
}

// ReadRecords parses a sales CSV with a header row. Columns are found by
// name; extra columns are ignored. Unparseable prices and quantities become
// missing values, while a bad date fails the whole read.
func ReadRecords(r io.Reader, source string) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MissingColumnError{Source: source, Columns: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", source, err)
	}

	idx, err := columnIndex(header, source)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: reading CSV: %w", source, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", source, line, len(header), len(rec))
		}

		record, err := parseRow(rec, idx, source, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func columnIndex(header []string, source string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Source: source, Columns: missing}
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int, source string, line int) (model.Record, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	date, err := ParseDate(cell(colDate))
	if err != nil {
		return model.Record{}, &DateError{Source: source, Line: line, Value: cell(colDate), Err: err}
	}

	return model.Record{
		Product:  NormalizeProduct(cell(colProduct)),
		Price:    ParseNumber(CleanPrice(cell(colPrice))),
		Quantity: ParseNumber(cell(colQuantity)),
		Date:     date,
		Region:   cell(colRegion),
		Source:   source,
		Line:     line,
	}, nil
}

// CleanPrice strips leading currency symbols and drops everything from the
// next "$" onward, so "$5.00$" becomes "5.00". A minus sign ahead of the
// symbol is kept: "-$3" becomes "-3".
func CleanPrice(s string) string {
	s = strings.TrimSpace(s)
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	s = strings.TrimLeft(s, currencySymbol)
	before, _, _ := strings.Cut(s, currencySymbol)
	return sign + strings.TrimSpace(before)
}

// ParseNumber converts s to a decimal. Empty or malformed input yields an
// invalid NullDecimal rather than an error.
func ParseNumber(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseDate infers the layout of s and returns the calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}

	// cast covers the ISO and RFC layouts exactly; dateparse infers the rest
	// (abbreviated months, unpadded or compact dates, month-first slashes).
	if t, err := cast.StringToDateInDefaultLocation(s, time.UTC); err == nil {
		return calendarDate(t), nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return calendarDate(t), nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeProduct lowercases and trims a product name for comparison.
func NormalizeProduct(s string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}
