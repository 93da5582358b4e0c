package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/pkg/logger"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/repository/sqlstore"
)

type globalOptions struct {
	envFile string
	verbose bool
}

// cliEnv is the opened store shared by every command
type cliEnv struct {
	db     *sqlstore.DB
	store  *sqlstore.ComplaintStore
	logger *zap.Logger
}

func (e *cliEnv) close() {
	if err := e.db.Close(); err != nil {
		e.logger.Error("Failed to close complaint store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func setup(ctx context.Context, opts globalOptions) (*cliEnv, error) {
	cfg, err := config.LoadFile(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := "error"
	if opts.verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return openEnv(ctx, &cfg.Database, log)
}

func openEnv(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*cliEnv, error) {
	db, err := sqlstore.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &cliEnv{db: db, store: sqlstore.NewComplaintRepository(db), logger: log}, nil
}

func runInit(ctx context.Context, env *cliEnv, w io.Writer) error {
	if err := env.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	applied, err := env.db.AppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	fmt.Fprintf(w, "Store ready (%s), migrations applied: %d\n", env.db.Dialect(), len(applied))
	return nil
}

func runImportLegacy(ctx context.Context, env *cliEnv, source, table string, w io.Writer) error {
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("legacy source: %w", err)
	}
	if err := env.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("legacy source: %w", err)
	}

	src, err := sqlstore.OpenSQLiteFile(ctx, abs, env.logger)
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := env.store.ImportLegacy(ctx, src, abs, table, recommend.CanonicalIssueType)
	if res != nil {
		printImportResult(w, source, table, res)
	}
	if err != nil {
		return fmt.Errorf("importing %s: %w", table, err)
	}
	return nil
}

func runStats(ctx context.Context, env *cliEnv, w io.Writer) error {
	if err := env.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	all, err := env.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading complaints: %w", err)
	}
	printSummary(w, len(all), aggregate.SummarizeByType(all))
	return nil
}
