// Command process reprocesses every stored GSTR-2B import batch against
// the current classification rules and replaces each batch's artifact in
// place. Batches with zero rows are skipped; per-batch failures are
// reported at the end without stopping the sweep.
// Usage: go run ./cmd/process
package main

import (
	"context"
	"fmt"
	"log"

	"tallymap/internal/config"
	"tallymap/internal/gstr2b"
	"tallymap/internal/repository/postgres"
	"tallymap/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	importRepo := postgres.NewImportRepo(db)
	processedRepo := postgres.NewProcessedFileRepo(db)
	stateCodeRepo := postgres.NewStateCodeRepo(db)

	ctx := context.Background()
	if err := stateCodeRepo.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("seeding state codes: %w", err)
	}

	resolver := gstr2b.NewStateResolver(stateCodeRepo)
	processSvc := service.NewProcessService(importRepo, processedRepo, resolver)

	result, err := processSvc.ProcessAll(ctx)
	if err != nil {
		return fmt.Errorf("sweep aborted: %w", err)
	}

	for _, f := range result.Failures {
		log.Printf("WARN: batch %s failed: %s", f.BatchID, f.Error)
	}
	log.Printf("Sweep complete: %d processed, %d skipped, %d failed",
		result.Processed, result.Skipped, len(result.Failures))
	return nil
}
