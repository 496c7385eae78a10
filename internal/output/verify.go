package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salesprep/salesprep/internal/model"
)

// Shape is the row count and column names of a dataset.
type Shape struct {
	Rows    int
	Columns []string
}

// ShapeOf returns the shape rows will have once written.
func ShapeOf(rows []model.OutputRow) Shape {
	return Shape{Rows: len(rows), Columns: Columns()}
}

// Mismatch describes one difference between the in-memory output and the
// file re-read from disk.
type Mismatch struct {
	Field    string
	Expected string
	Actual   string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Field, m.Expected, m.Actual)
}

// ReadShape counts the data rows and reads the header of a CSV stream.
// Data cells are not parsed.
func ReadShape(r io.Reader) (Shape, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Shape{}, nil
	}
	if err != nil {
		return Shape{}, fmt.Errorf("reading header: %w", err)
	}

	s := Shape{Columns: header}
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Shape{}, fmt.Errorf("reading row %d: %w", s.Rows+2, err)
		}
		s.Rows++
	}
	return s, nil
}

// Inspect re-opens a written output file and returns its shape along with
// the decoded rows.
func Inspect(path string) (Shape, []model.OutputRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Shape{}, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	s, err := ReadShape(bytes.NewReader(data))
	if err != nil {
		return Shape{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rows, err := ReadRows(bytes.NewReader(data))
	if err != nil {
		return Shape{}, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, rows, nil
}

// Verify compares the expected and actual shapes. An empty result means they
// agree.
func Verify(expected, actual Shape) []Mismatch {
	var ms []Mismatch

	if expected.Rows != actual.Rows {
		ms = append(ms, Mismatch{
			Field:    "rows",
			Expected: fmt.Sprint(expected.Rows),
			Actual:   fmt.Sprint(actual.Rows),
		})
	}

	if len(expected.Columns) != len(actual.Columns) {
		ms = append(ms, Mismatch{
			Field:    "column count",
			Expected: fmt.Sprint(len(expected.Columns)),
			Actual:   fmt.Sprint(len(actual.Columns)),
		})
	}

	if strings.Join(expected.Columns, ",") != strings.Join(actual.Columns, ",") {
		ms = append(ms, Mismatch{
			Field:    "columns",
			Expected: strings.Join(expected.Columns, ","),
			Actual:   strings.Join(actual.Columns, ","),
		})
	}

	return ms
}

// CompareRows reports every row whose decoded values differ from the rows
// that were written. Rows beyond the shorter slice are covered by Verify's
// row count.
func CompareRows(expected, actual []model.OutputRow) []Mismatch {
	var ms []Mismatch
	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		want := strings.Join(MarshalRow(expected[i]), ",")
		got := strings.Join(MarshalRow(actual[i]), ",")
		if want != got {
			ms = append(ms, Mismatch{
				Field:    fmt.Sprintf("row %d", i+2),
				Expected: want,
				Actual:   got,
			})
		}
	}
	return ms
}
