package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Config carries every path the pipeline touches. Each field is
// independently overridable from the command line; the Resolve*
// helpers implement the best-effort fallback searches.
type Config struct {
	// BaseDir is the last-resort search root for both the JSON
	// catalogs and the input CSV.
	BaseDir string
	// DataDir is the preferred location of the JSON catalogs.
	DataDir string
	// InputCSV is the external row set to enrich.
	InputCSV string

	MergedCSV  string
	JoinedCSV  string
	SQLitePath string
	ReportPath string
}

// Default returns the conventional layout: catalogs under ./data,
// input.csv beside them, artifacts in the working directory.
func Default() Config {
	return Config{
		BaseDir:    ".",
		DataDir:    "data",
		InputCSV:   "input.csv",
		MergedCSV:  "merged_output.csv",
		JoinedCSV:  "joined_output.csv",
		SQLitePath: "catalog.sqlite",
		ReportPath: "report.md",
	}
}

// ResolveInputCSV returns the path of the external CSV. If InputCSV
// does not exist as given, the base directory is searched recursively
// for a file with the same base name and the first hit wins.
func (c Config) ResolveInputCSV(log zerolog.Logger) (string, error) {
	if _, err := os.Stat(c.InputCSV); err == nil {
		return c.InputCSV, nil
	}
	log.Warn().Str("path", c.InputCSV).Msg("input CSV not found at configured path, searching")

	name := filepath.Base(c.InputCSV)
	found := ""
	err := filepath.WalkDir(c.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "_MACOSX" || d.Name() == ".DS_Store" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err == nil && found != "" {
		log.Info().Str("path", found).Msg("found input CSV")
		return found, nil
	}
	return "", fmt.Errorf("input CSV %s not found under %s", name, c.BaseDir)
}
