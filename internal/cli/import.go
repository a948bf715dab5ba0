package cli

import (
	"fmt"
	"os"

	"github.com/brownsdata/ingredient-allocator/internal/adapters/checkout"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/logging"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

// RunImport loads a CHECK_OUT CSV export into the database.
func RunImport(cfg *config.Config, flags *ImportFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "import")

	if flags.File == "" {
		return fmt.Errorf("-file is required")
	}

	minYear := cfg.Allocation.MinYear
	if flags.MinYear > 0 {
		minYear = flags.MinYear
	}

	f, err := os.Open(flags.File)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	importer := &checkout.Importer{MinYear: minYear}
	records, report, err := importer.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse export: %w", err)
	}

	logger.Info("parsed export",
		"file", flags.File,
		"rows", report.TotalRows,
		"parsed", report.Parsed,
		"skipped_invalid", report.SkippedInvalid,
		"skipped_old", report.SkippedOld)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.SaveIssuances(records)
	if err != nil {
		return fmt.Errorf("failed to save issuances: %w", err)
	}

	logger.Info("import complete",
		"inserted", inserted,
		"duplicates", len(records)-inserted,
		"database", cfg.Storage.DatabasePath)
	return nil
}
