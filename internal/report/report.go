// Package report prints the console summary of a formatting run.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/salesprep/salesprep/internal/ingest"
	"github.com/salesprep/salesprep/internal/model"
	"github.com/salesprep/salesprep/internal/output"
	"github.com/salesprep/salesprep/internal/pipeline"
)

const (
	dateFormat = "2006-01-02"
	missing    = "NaN"
	ruleWidth  = 60
)

var rule = strings.Repeat("=", ruleWidth)

func banner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Inputs lists the files that were combined, in processing order.
func Inputs(w io.Writer, files []ingest.FileInfo) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	fmt.Fprintf(w, "Found %d CSV files: [%s]\n", len(files), strings.Join(names, ", "))
}

// Preview prints the first n rows as an aligned table with a zero-based
// index column.
func Preview(w io.Writer, rows []model.OutputRow, n int) error {
	banner(w, fmt.Sprintf("OUTPUT PREVIEW (first %d rows)", n))

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	if n > len(rows) {
		n = len(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t"+strings.Join(output.Columns(), "\t")+"\t\n")
	for i, r := range rows[:n] {
		sales := missing
		if r.Sales.Valid {
			sales = output.FormatSales(r.Sales.Decimal)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", i, sales, r.Date.Format(dateFormat), r.Region)
	}
	return tw.Flush()
}

// Statistics prints row count, date range, regions and total sales.
func Statistics(w io.Writer, s pipeline.Summary) {
	banner(w, "OUTPUT STATISTICS")

	fmt.Fprintf(w, "Total rows in output: %d\n", s.Rows)
	if s.HasDates {
		fmt.Fprintf(w, "Date range: %s to %s\n", s.FirstDate.Format(dateFormat), s.LastDate.Format(dateFormat))
	} else {
		fmt.Fprintln(w, "Date range: n/a")
	}
	fmt.Fprintf(w, "Regions: [%s]\n", strings.Join(s.Regions, ", "))
	fmt.Fprintf(w, "Total sales: %s\n", FormatCurrency(s.TotalSales))
	if s.MissingSales > 0 {
		fmt.Fprintf(w, "Rows with missing sales: %d\n", s.MissingSales)
	}
}

// Saved prints the save confirmation banner.
func Saved(w io.Writer, path string) {
	banner(w, "Output saved to: "+path)
}

// Verification prints the shape of the re-read output file, followed by any
// mismatches against the in-memory dataset.
func Verification(w io.Writer, actual output.Shape, mismatches []output.Mismatch) {
	fmt.Fprintf(w, "\nVerification: File contains %d rows and %d columns\n", actual.Rows, len(actual.Columns))
	fmt.Fprintf(w, "Columns: [%s]\n", strings.Join(actual.Columns, ", "))
	for _, m := range mismatches {
		fmt.Fprintf(w, "Mismatch: %s\n", m.Error())
	}
}

// FormatCurrency renders d as dollars with thousands separators and two
// decimals, e.g. "$1,234.50".
func FormatCurrency(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).StringFixed(2) // "0.xx"

	p := message.NewPrinter(language.English)
	return sign + "$" + p.Sprintf("%d", whole.IntPart()) + cents[1:]
}
