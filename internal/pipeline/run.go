// Package pipeline combines loaded sales tables into the formatted output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/salesprep/salesprep/internal/config"
	"github.com/salesprep/salesprep/internal/ingest"
	"github.com/salesprep/salesprep/internal/model"
	"github.com/salesprep/salesprep/internal/output"
)

// Result describes a completed run.
type Result struct {
	Files      []ingest.FileInfo
	Combined   int // rows across all files
	Filtered   int // rows matching the product
	Rows       []model.OutputRow
	Summary    Summary
	OutputPath string
	Reread     output.Shape // shape of the file read back from disk
	Mismatches []output.Mismatch
}

// Run loads every input file, filters and derives the output rows, writes
// them to cfg.Output.Path and reads the file back to check it.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	files, err := ingest.Scan(cfg.Input.Dir, cfg.Input.Pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}
	logger.Info("found input files", "count", len(files), "dir", cfg.Input.Dir)

	tables := make([]model.Table, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tbl, err := ingest.LoadFile(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f.Name, err)
		}
		logger.Info("loaded file", "file", f.Name, "bytes", f.Size, "rows", len(tbl.Records))
		tables = append(tables, tbl)
	}

	combined, err := Concat(tables)
	if errors.Is(err, ErrNoInput) {
		return nil, fmt.Errorf("%w matched %s", ErrNoInput, filepath.Join(cfg.Input.Dir, cfg.Input.Pattern))
	}
	if err != nil {
		return nil, err
	}
	logger.Info("combined rows", "rows", len(combined))

	filtered := FilterProduct(combined, cfg.Filter.Product)
	logger.Info("filtered rows", "product", cfg.Filter.Product, "rows", len(filtered))
	for _, r := range filtered {
		if !r.Sales().Valid {
			logger.Warn("sales missing, price or quantity not numeric", "file", r.Source, "line", r.Line)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := SortByDate(Derive(filtered))

	if err := output.Save(cfg.Output.Path, rows); err != nil {
		return nil, fmt.Errorf("saving output: %w", err)
	}

	reread, rereadRows, err := output.Inspect(cfg.Output.Path)
	if err != nil {
		return nil, fmt.Errorf("verifying output: %w", err)
	}
	mismatches := output.Verify(output.ShapeOf(rows), reread)
	mismatches = append(mismatches, output.CompareRows(rows, rereadRows)...)
	for _, m := range mismatches {
		logger.Warn("output verification mismatch", "field", m.Field, "expected", m.Expected, "actual", m.Actual)
	}

	return &Result{
		Files:      files,
		Combined:   len(combined),
		Filtered:   len(filtered),
		Rows:       rows,
		Summary:    Summarize(rows),
		OutputPath: cfg.Output.Path,
		Reread:     reread,
		Mismatches: mismatches,
	}, nil
}
