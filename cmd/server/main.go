package main

import (
	"context"
	"fmt"
	"log"

	"tallymap/internal/config"
	"tallymap/internal/gstr2b"
	"tallymap/internal/handler"
	"tallymap/internal/port"
	"tallymap/internal/repository/postgres"
	"tallymap/internal/router"
	"tallymap/internal/service"
	s3storage "tallymap/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	stateCodeRepo := postgres.NewStateCodeRepo(db)
	importRepo := postgres.NewImportRepo(db)
	processedRepo := postgres.NewProcessedFileRepo(db)

	// Seed the jurisdiction reference table on first boot
	if err := stateCodeRepo.EnsureSeeded(context.Background()); err != nil {
		return fmt.Errorf("failed to seed state codes: %w", err)
	}

	// Initialize storage (workbook archive; optional)
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		storage = s3Client
	}

	// Initialize services
	resolver := gstr2b.NewStateResolver(stateCodeRepo)
	companySvc := service.NewCompanyService(companyRepo)
	stateCodeSvc := service.NewStateCodeService(stateCodeRepo)
	importSvc := service.NewImportService(importRepo, companyRepo, storage, &cfg.S3)
	processSvc := service.NewProcessService(importRepo, processedRepo, resolver)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	companyH := handler.NewCompanyHandler(companySvc)
	stateCodeH := handler.NewStateCodeHandler(stateCodeSvc)
	importH := handler.NewImportHandler(importSvc, processSvc)

	// Setup router
	r := router.Setup(cfg, healthH, companyH, stateCodeH, importH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
