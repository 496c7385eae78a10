package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesprep/salesprep/internal/ingest"
	"github.com/salesprep/salesprep/internal/model"
	"github.com/salesprep/salesprep/internal/output"
	"github.com/salesprep/salesprep/internal/pipeline"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"6", "$6.00"},
		{"4959", "$4,959.00"},
		{"1234567.891", "$1,234,567.89"},
		{"0.005", "$0.01"},
		{"-1234.5", "-$1,234.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)), "FormatCurrency(%s)", tt.in)
	}
}

func TestInputs(t *testing.T) {
	var buf bytes.Buffer
	Inputs(&buf, []ingest.FileInfo{{Name: "daily_sales_data_0.csv"}, {Name: "daily_sales_data_1.csv"}})
	assert.Equal(t, "Found 2 CSV files: [daily_sales_data_0.csv, daily_sales_data_1.csv]\n", buf.String())
}

func TestPreview_LimitsRows(t *testing.T) {
	var rows []model.OutputRow
	for i := 0; i < 12; i++ {
		rows = append(rows, model.OutputRow{
			Sales:  decimal.NewNullDecimal(decimal.NewFromInt(int64(i))),
			Date:   date(2024, 1, i+1),
			Region: fmt.Sprintf("r%d", i),
		})
	}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, rows, 10))
	out := buf.String()

	assert.Contains(t, out, "OUTPUT PREVIEW (first 10 rows)")
	assert.Contains(t, out, "r9")
	assert.NotContains(t, out, "r10")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "sales")
}

func TestPreview_MissingSales(t *testing.T) {
	rows := []model.OutputRow{{Date: date(2024, 1, 1), Region: "north"}}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, rows, 10))
	assert.Contains(t, buf.String(), "NaN")
}

func TestPreview_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, nil, 10))
	assert.Contains(t, buf.String(), "(no rows)")
}

func TestStatistics(t *testing.T) {
	s := pipeline.Summary{
		Rows:         4,
		HasDates:     true,
		FirstDate:    date(2018, 2, 4),
		LastDate:     date(2018, 2, 7),
		Regions:      []string{"west", "south"},
		TotalSales:   decimal.RequireFromString("4959"),
		MissingSales: 1,
	}

	var buf bytes.Buffer
	Statistics(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "Total rows in output: 4")
	assert.Contains(t, out, "Date range: 2018-02-04 to 2018-02-07")
	assert.Contains(t, out, "Regions: [west, south]")
	assert.Contains(t, out, "Total sales: $4,959.00")
	assert.Contains(t, out, "Rows with missing sales: 1")
}

func TestStatistics_Empty(t *testing.T) {
	var buf bytes.Buffer
	Statistics(&buf, pipeline.Summarize(nil))
	out := buf.String()

	assert.Contains(t, out, "Total rows in output: 0")
	assert.Contains(t, out, "Date range: n/a")
	assert.Contains(t, out, "Total sales: $0.00")
	assert.NotContains(t, out, "missing sales")
}

func TestSaved(t *testing.T) {
	var buf bytes.Buffer
	Saved(&buf, "formatted_output.csv")
	assert.Contains(t, buf.String(), "Output saved to: formatted_output.csv")
	assert.Equal(t, 2, strings.Count(buf.String(), strings.Repeat("=", ruleWidth)))
}

func TestVerification(t *testing.T) {
	var buf bytes.Buffer
	Verification(&buf, output.Shape{Rows: 4, Columns: output.Columns()}, nil)
	out := buf.String()

	assert.Contains(t, out, "Verification: File contains 4 rows and 3 columns")
	assert.Contains(t, out, "Columns: [sales, date, region]")
	assert.NotContains(t, out, "Mismatch")
}

func TestVerification_Mismatch(t *testing.T) {
	var buf bytes.Buffer
	Verification(&buf, output.Shape{Rows: 3, Columns: output.Columns()},
		[]output.Mismatch{{Field: "rows", Expected: "4", Actual: "3"}})
	assert.Contains(t, buf.String(), "Mismatch: rows: expected 4, got 3")
}
