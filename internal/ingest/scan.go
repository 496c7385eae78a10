package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes an input file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// DefaultPattern matches the sales exports in the input directory.
const DefaultPattern = "*.csv"

// Scan returns the files in dir whose name matches pattern, sorted by name.
// Matching ignores case, so "*.csv" also picks up "Q1.CSV".
// A missing directory yields no files and no error.
func Scan(dir, pattern string) ([]FileInfo, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, _ := filepath.Match(strings.ToLower(pattern), strings.ToLower(e.Name()))
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}

	// Row order before the date sort follows file order.
	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
