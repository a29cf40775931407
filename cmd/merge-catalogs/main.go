package main

import (
	"flag"

	"catmerge/internal/config"
	"catmerge/internal/logger"
	"catmerge/internal/pipeline"
)

func main() {
	defaults := config.Default()
	baseDir := flag.String("base-dir", defaults.BaseDir, "Fallback search root for catalogs and the input CSV")
	dataDir := flag.String("data-dir", defaults.DataDir, "Directory holding the category JSON catalogs")
	inputCSV := flag.String("input", defaults.InputCSV, "External CSV of rows to enrich")
	mergedCSV := flag.String("merged", defaults.MergedCSV, "Merged product table output path")
	joinedCSV := flag.String("joined", defaults.JoinedCSV, "Joined table output path")
	sqlitePath := flag.String("sqlite", defaults.SQLitePath, "SQLite mirror of the output tables")
	reportPath := flag.String("report", defaults.ReportPath, "Run report output path")
	flag.Parse()

	log := logger.New()
	cfg := config.Config{
		BaseDir:    *baseDir,
		DataDir:    *dataDir,
		InputCSV:   *inputCSV,
		MergedCSV:  *mergedCSV,
		JoinedCSV:  *joinedCSV,
		SQLitePath: *sqlitePath,
		ReportPath: *reportPath,
	}

	if err := pipeline.Run(log, cfg); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
}
