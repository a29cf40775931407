package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"catmerge/internal/tabular"
)

// RequiredColumns is the fixed schema of the merged product table.
var RequiredColumns = []string{"sku", "name", "brand", "category"}

// FileRecords reports how many records one source file contributed.
type FileRecords struct {
	Path     string
	Category string
	Records  int
}

// MergeStats summarizes a merge for the run report.
type MergeStats struct {
	PerFile            []FileRecords
	SkippedFiles       []string
	RecordsRead        int
	DuplicatesDropped  int
	RenamedID          bool
	SynthesizedColumns []string
}

// Merge reads the given JSON files in order and produces the merged,
// deduplicated product table with the RequiredColumns schema.
//
// Each record is tagged with a category derived from its file name.
// A file that cannot be read or parsed is skipped with a diagnostic
// and contributes nothing. Duplicate identifiers are resolved by
// sorting on category ascending and keeping the last row, so the
// lexicographically-greatest category wins; the tie-break among rows
// sharing both sku and category follows the stable sort and is
// implementation-defined.
func Merge(log zerolog.Logger, files []string) (*tabular.Table, MergeStats) {
	var stats MergeStats
	t := &tabular.Table{}
	seen := make(map[string]bool)

	for _, path := range files {
		category := categoryFromPath(path)
		recs, err := readRecords(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping file")
			stats.SkippedFiles = append(stats.SkippedFiles, path)
			continue
		}
		for _, rec := range recs {
			row := make(tabular.Row, len(rec)+1)
			for k, v := range rec {
				row[k] = tabular.Text(v)
				if !seen[k] {
					seen[k] = true
					t.Columns = append(t.Columns, k)
				}
			}
			row["category"] = category
			t.Append(row)
		}
		if !seen["category"] && len(recs) > 0 {
			seen["category"] = true
			t.Columns = append(t.Columns, "category")
		}
		stats.PerFile = append(stats.PerFile, FileRecords{Path: path, Category: category, Records: len(recs)})
		stats.RecordsRead += len(recs)
		log.Info().Str("file", path).Int("records", len(recs)).Msg("processed")
	}

	// Column-level rename: applied once, globally, never per record.
	if t.HasColumn("id") && !t.HasColumn("sku") {
		t.RenameColumn("id", "sku")
		stats.RenamedID = true
		log.Info().Msg("renamed column id to sku")
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i]["category"] < t.Rows[j]["category"]
	})

	lastBySKU := make(map[string]int, len(t.Rows))
	for i, r := range t.Rows {
		lastBySKU[r["sku"]] = i
	}
	deduped := make([]tabular.Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		if lastBySKU[r["sku"]] != i {
			stats.DuplicatesDropped++
			continue
		}
		deduped = append(deduped, r)
	}
	t.Rows = deduped

	for _, c := range RequiredColumns {
		if t.HasColumn(c) {
			continue
		}
		t.AddColumn(c, "")
		stats.SynthesizedColumns = append(stats.SynthesizedColumns, c)
		log.Warn().Str("column", c).Msg("required column not found in data, creating empty column")
	}
	return t.Select(RequiredColumns...), stats
}

func categoryFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// readRecords parses one source file as a JSON array of objects. Any
// other top-level shape, and any non-object element, is a malformed
// source: the whole file is rejected.
func readRecords(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: top-level value is not an array", path)
	}
	recs := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse %s: element %d is not an object", path, i)
		}
		recs = append(recs, m)
	}
	return recs, nil
}
