package main

import (
	"context"
	"os"

	sonic "github.com/bytedance/sonic"

	"github.com/fedenh3/proyecto-cava/internal/app"
	"github.com/fedenh3/proyecto-cava/internal/config"
	"github.com/fedenh3/proyecto-cava/internal/platform/logging"
	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

// The etl binary is a one-shot batch: it wipes the ingested tables,
// reloads the club workbook and prints the run report as JSON on
// stdout.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	services, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer services.Close()

	if cfg.AdminUsername != "" {
		if err := services.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Error("seed admin user", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("etl run starting",
		"workbook", cfg.WorkbookPath,
		"default_season", cfg.DefaultSeason,
		"workers", cfg.ETLWorkers,
	)

	report, err := services.Ingest.Run(ctx, usecase.IngestInput{
		WorkbookPath:  cfg.WorkbookPath,
		DefaultSeason: cfg.DefaultSeason,
		MaxWorkers:    cfg.ETLWorkers,
	})
	if err != nil {
		logger.Error("etl run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("etl run finished",
		"matches", report.Matches,
		"players", report.Players,
		"stat_rows", report.StatRows,
		"duration_ms", report.DurationMs,
	)

	if err := sonic.ConfigDefault.NewEncoder(os.Stdout).Encode(report); err != nil {
		logger.Error("encode run report", "error", err)
		os.Exit(1)
	}
}
