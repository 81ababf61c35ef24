// Package main provides the freee-export binary entry point. It fetches
// workload and project records from the freee pm API for one period,
// aggregates minutes per employee, project and workload tag, and writes the
// summary CSV to the configured output directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ma6uchi/freee-api-export/internal/config"
	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
	"github.com/ma6uchi/freee-api-export/internal/domain/report"
	"github.com/ma6uchi/freee-api-export/internal/export"
	"github.com/ma6uchi/freee-api-export/internal/freee"
	"github.com/ma6uchi/freee-api-export/internal/repository"
	"github.com/ma6uchi/freee-api-export/internal/sink"
	"github.com/ma6uchi/freee-api-export/internal/sqlite"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		exportType string
		month      string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:           "freee-export",
		Short:         "Export freee workload summaries to CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), export.Type(exportType), month, outDir)
		},
	}

	cmd.Flags().StringVar(&exportType, "type", string(export.TypeMonthly), "export type: monthly (previous month) or weekly (current month)")
	cmd.Flags().StringVar(&month, "month", "", "explicit target month (YYYY-MM), overrides --type period derivation")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for the CSV report")

	return cmd
}

func run(ctx context.Context, exportType export.Type, month, outDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if outDir != "" {
		cfg.Export.OutDir = outDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	store := sqlite.NewCredentialStore(db)
	if err := seedRefreshToken(ctx, store, cfg.Freee.CredentialScope, logger); err != nil {
		return err
	}

	tokens := freee.NewTokenSource(cfg.Freee.TokenURL, cfg.Freee.ClientID, cfg.Freee.ClientSecret, nil)
	guardian := credential.NewGuardian(store, tokens, cfg.Freee.CredentialScope, logger)
	client := freee.NewClient(freee.Config{
		BaseURL:          cfg.Freee.BaseURL,
		Auth:             guardian,
		PageLimit:        cfg.Freee.PageLimit,
		ThrottleInterval: time.Duration(cfg.Freee.ThrottleMS) * time.Millisecond,
		Logger:           logger,
	})

	aggregator := report.NewAggregator(cfg.Export.InternalTag, cfg.Export.ExternalTag)
	runner := export.NewRunner(guardian, client, aggregator, sink.NewLocal(cfg.Export.OutDir), logger)

	result, err := runner.Run(ctx, export.Params{
		Type:           exportType,
		Month:          month,
		CompanyID:      cfg.Freee.CompanyID,
		EmployeesScope: cfg.Freee.EmployeesScope,
	})
	if err != nil {
		return err
	}

	switch result.Outcome {
	case export.OutcomeNoData:
		logger.Info("export finished with no data", "period", result.Period.String())
	default:
		logger.Info("export finished", "rows", result.RowCount, "location", result.Location)
	}
	return nil
}

// seedRefreshToken bootstraps the credential store from FREEE_REFRESH_TOKEN
// on first run. The seeded credential has no access token, so the first API
// call immediately refreshes and rotates it into the store.
func seedRefreshToken(ctx context.Context, store *sqlite.CredentialStore, scope string, logger *slog.Logger) error {
	token := os.Getenv("FREEE_REFRESH_TOKEN")
	if token == "" {
		return nil
	}

	_, err := store.Get(ctx, scope)
	if err == nil {
		// A stored credential always wins over the env seed; its refresh
		// token is the only one still valid after any prior rotation.
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking stored credential: %w", err)
	}

	logger.Info("seeding credential store from FREEE_REFRESH_TOKEN", "scope", scope)
	if err := store.Put(ctx, scope, credential.Credential{RefreshToken: token}); err != nil {
		return fmt.Errorf("seeding credential: %w", err)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
