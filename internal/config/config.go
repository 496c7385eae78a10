package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file looked up by `salesprep run`.
const FileName = "salesprep.yaml"

// Config represents the top-level salesprep.yaml configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Filter FilterConfig `yaml:"filter"`
	Report ReportConfig `yaml:"report"`
}

// InputConfig locates the sales exports.
type InputConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"` // glob matched against file names
}

// OutputConfig controls where the formatted CSV is written.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// FilterConfig selects the product line to keep.
type FilterConfig struct {
	Product string `yaml:"product"`
}

// ReportConfig controls the console summary.
type ReportConfig struct {
	PreviewRows int `yaml:"preview_rows"`
}

// Load reads a salesprep.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the fixed settings of the sales formatting job.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:     "data",
			Pattern: "*.csv",
		},
		Output: OutputConfig{
			Path: "formatted_output.csv",
		},
		Filter: FilterConfig{
			Product: "pink morsel",
		},
		Report: ReportConfig{
			PreviewRows: 10,
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Input.Dir == "" {
		errs = append(errs, errors.New("input.dir is required"))
	}
	if c.Input.Pattern == "" {
		errs = append(errs, errors.New("input.pattern is required"))
	} else if _, err := filepath.Match(c.Input.Pattern, ""); err != nil {
		errs = append(errs, fmt.Errorf("input.pattern %q: %w", c.Input.Pattern, err))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path is required"))
	}
	if c.Filter.Product == "" {
		errs = append(errs, errors.New("filter.product is required"))
	}
	if c.Report.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("report.preview_rows must not be negative, got %d", c.Report.PreviewRows))
	}
	return errors.Join(errs...)
}

// Resolve makes relative input and output paths relative to base.
func (c *Config) Resolve(base string) {
	if !filepath.IsAbs(c.Input.Dir) {
		c.Input.Dir = filepath.Join(base, c.Input.Dir)
	}
	if !filepath.IsAbs(c.Output.Path) {
		c.Output.Path = filepath.Join(base, c.Output.Path)
	}
}
