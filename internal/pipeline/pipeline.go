package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"catmerge/internal/catalog"
	"catmerge/internal/config"
	"catmerge/internal/report"
	"catmerge/internal/store"
	"catmerge/internal/tabular"
)

// Run executes the batch pipeline: discover JSON catalogs, merge them
// into the deduplicated product table, left-join the external CSV rows
// against it, and persist the artifacts. Stages are strictly
// sequential and everything is held in memory.
//
// Finding no JSON files at all is reported and ends the run without
// artifacts. A missing external CSV fails the join stage only; the
// merged artifacts already written stay on disk.
func Run(log zerolog.Logger, cfg config.Config) error {
	run := report.NewRun()
	log = log.With().Str("run_id", run.ID).Logger()

	// 1. Discover source catalogs, falling back to the base directory.
	files := catalog.Discover(log, cfg.DataDir)
	if len(files) == 0 {
		log.Warn().Str("dir", cfg.DataDir).Msg("no JSON files in data directory, scanning base directory")
		files = catalog.Discover(log, cfg.BaseDir)
	}
	if len(files) == 0 {
		log.Warn().Msg("no JSON files found, nothing to do")
		return nil
	}
	log.Info().Int("files", len(files)).Msg("discovered JSON catalogs")
	run.FilesFound = len(files)

	// 2. Merge and normalize.
	merged, mergeStats := catalog.Merge(log, files)
	run.Merge = mergeStats
	run.MergedRows = len(merged.Rows)

	// 3. Persist the merged table.
	if err := tabular.WriteCSV(cfg.MergedCSV, merged); err != nil {
		return fmt.Errorf("write merged csv: %w", err)
	}
	log.Info().Str("path", cfg.MergedCSV).Int("rows", len(merged.Rows)).Msg("wrote merged table")
	run.Artifacts = append(run.Artifacts, cfg.MergedCSV)
	if err := store.Write(cfg.SQLitePath, "products", merged); err != nil {
		return fmt.Errorf("write sqlite products: %w", err)
	}
	run.Artifacts = append(run.Artifacts, cfg.SQLitePath)

	// 4. Locate and read the external row set.
	inputPath, err := cfg.ResolveInputCSV(log)
	if err != nil {
		return err
	}
	external, err := tabular.LoadCSV(inputPath)
	if err != nil {
		return fmt.Errorf("read input csv %s: %w", inputPath, err)
	}

	// 5. Left join, preserving every external row.
	joined, joinStats := catalog.Join(log, external, merged)
	run.Join = joinStats

	// 6. Persist the joined table and the run report.
	if err := tabular.WriteCSV(cfg.JoinedCSV, joined); err != nil {
		return fmt.Errorf("write joined csv: %w", err)
	}
	log.Info().
		Str("path", cfg.JoinedCSV).
		Int("input_rows", joinStats.ExternalRows).
		Int("output_rows", joinStats.OutputRows).
		Msg("wrote joined table")
	run.Artifacts = append(run.Artifacts, cfg.JoinedCSV)
	if err := store.Write(cfg.SQLitePath, "joined", joined); err != nil {
		return fmt.Errorf("write sqlite joined: %w", err)
	}
	if err := run.WriteFile(cfg.ReportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	run.Artifacts = append(run.Artifacts, cfg.ReportPath)
	log.Info().Str("path", cfg.ReportPath).Msg("wrote run report")
	return nil
}
