package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurante/internal/archive"
	"restaurante/internal/config"
	"restaurante/internal/database"
	"restaurante/internal/repository"
	"restaurante/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("archive", flag.ContinueOnError)
	dateFlag := flags.String("date", "", "day to archive as YYYY-MM-DD (default: yesterday in the report time zone)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	loc := cfg.Report.Location()

	date, err := archiveDate(*dateFlag, time.Now(), loc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	orderRepo := repository.NewOrderRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)
	reportService := service.NewReportService(reportRepo, orderRepo, loc, logger)

	// Initialize archive store with S3 and local fallback
	fileStore := archive.NewFileStore(cfg.Archive.Dir, logger)
	var s3Store archive.Store

	if cfg.S3.Enabled {
		s3Store, err = archive.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 store, falling back to local file system only")
		}
	} else {
		logger.Info().Str("dir", cfg.Archive.Dir).Msg("using local file system for archives (S3 disabled)")
	}

	store := archive.NewFallbackStore(s3Store, fileStore, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	archiver := archive.NewArchiver(reportService, store, logger)

	key, err := archiver.ArchiveDay(ctx, date)
	if err != nil {
		return err
	}

	logger.Info().Str("key", key).Msg("archive pass completed")
	return nil
}

// archiveDate resolves the -date flag; an empty value means the day before now in loc.
func archiveDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d-1, 0, 0, 0, 0, loc), nil
	}
	date, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q: must be YYYY-MM-DD", value)
	}
	return date, nil
}
