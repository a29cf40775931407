package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"catmerge/internal/catalog"
)

// Run collects what happened during one pipeline execution and renders
// it as a markdown report.
type Run struct {
	ID        string
	StartedAt time.Time

	FilesFound int
	Merge      catalog.MergeStats
	MergedRows int
	Join       catalog.JoinStats
	Artifacts  []string
}

func NewRun() *Run {
	return &Run{ID: uuid.NewString(), StartedAt: time.Now()}
}

func (r *Run) Markdown() string {
	lines := []string{
		"# Catalog merge run " + r.ID,
		"",
		"- Started: " + r.StartedAt.UTC().Format(time.RFC3339),
		"",
		"## Source files",
		fmt.Sprintf("- JSON files found: %d", r.FilesFound),
		fmt.Sprintf("- Files skipped (unreadable or malformed): %d", len(r.Merge.SkippedFiles)),
	}
	for _, f := range r.Merge.PerFile {
		lines = append(lines, fmt.Sprintf("- `%s` (category `%s`): %d records", f.Path, f.Category, f.Records))
	}
	for _, f := range r.Merge.SkippedFiles {
		lines = append(lines, fmt.Sprintf("- `%s`: skipped", f))
	}
	lines = append(lines,
		"",
		"## Merge",
		fmt.Sprintf("- Records read: %d", r.Merge.RecordsRead),
		fmt.Sprintf("- Duplicate skus dropped: %d", r.Merge.DuplicatesDropped),
		fmt.Sprintf("- Rows in merged table: %d", r.MergedRows),
	)
	if r.Merge.RenamedID {
		lines = append(lines, "- Column `id` renamed to `sku`")
	}
	for _, c := range r.Merge.SynthesizedColumns {
		lines = append(lines, fmt.Sprintf("- Column `%s` missing from all sources, synthesized empty", c))
	}

	lines = append(lines,
		"",
		"## Join",
		fmt.Sprintf("- Join key: `%s` (recognized: %t)", r.Join.Key, r.Join.KeyFound),
		fmt.Sprintf("- External rows: %d", r.Join.ExternalRows),
		fmt.Sprintf("- Matched: %d, unmatched: %d", r.Join.MatchedRows, r.Join.UnmatchedRows),
		fmt.Sprintf("- Output rows: %d", r.Join.OutputRows),
	)

	if len(r.Artifacts) > 0 {
		lines = append(lines, "", "## Artifacts")
		for _, a := range r.Artifacts {
			lines = append(lines, "- "+a)
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (r *Run) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(r.Markdown()), 0o644)
}
