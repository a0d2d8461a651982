// Command lexicon-import loads a curated delimited file into the latin table.
// Rows are upserted by headword in a single transaction; a failed run writes
// nothing. The file is validated before the database is touched, and a dry
// run never connects.
//
// Flags:
//
//	--file     path to the lexicon file (required)
//	--comma    field delimiter (default ";")
//	--dry-run  parse and validate without writing to DB
//	--migrate  apply pending schema migrations before importing
//	--config   YAML config path (default $CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql

	"github.com/heartmarshall/dante-lexicon/internal/adapter/postgres"
	"github.com/heartmarshall/dante-lexicon/internal/adapter/postgres/latin"
	"github.com/heartmarshall/dante-lexicon/internal/app"
	"github.com/heartmarshall/dante-lexicon/internal/config"
	"github.com/heartmarshall/dante-lexicon/internal/service/importer"
	"github.com/heartmarshall/dante-lexicon/migrations"
)

func main() {
	fileFlag := flag.String("file", "", "path to the lexicon file")
	commaFlag := flag.String("comma", ";", "field delimiter")
	dryRunFlag := flag.Bool("dry-run", false, "parse and validate without writing to DB")
	migrateFlag := flag.Bool("migrate", false, "apply pending migrations before importing")
	configFlag := flag.String("config", os.Getenv(config.PathEnv), "YAML config path")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}
	comma, size := utf8.DecodeRuneInString(*commaFlag)
	if comma == utf8.RuneError || size != len(*commaFlag) {
		log.Fatalf("--comma must be a single character, got %q", *commaFlag)
	}

	appCfg, err := config.LoadFile(*configFlag)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	opts := options{file: *fileFlag, comma: comma, dryRun: *dryRunFlag, migrate: *migrateFlag}
	dial := func(ctx context.Context) (*importer.Service, func(), error) {
		if opts.migrate {
			if err := migrate(ctx, appCfg.Database.DSN, logger); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return importer.NewService(logger, latin.New(pool), postgres.NewTxManager(pool)), pool.Close, nil
	}

	report, err := run(ctx, logger, opts, dial)
	if err != nil {
		logger.Error("import failed", slog.String("file", opts.file), slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, w := range report.Warnings {
		logger.Warn("import warning", slog.String("detail", w))
	}
	logger.Info("import complete",
		slog.String("file", opts.file),
		slog.Bool("dry_run", opts.dryRun),
		slog.Int("rows", report.Rows),
		slog.Int("inserted", report.Inserted),
		slog.Int("updated", report.Updated),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("duration", report.Duration),
	)
}

type options struct {
	file    string
	comma   rune
	dryRun  bool
	migrate bool
}

// dialFunc connects the store and returns a writing service plus its cleanup.
type dialFunc func(ctx context.Context) (*importer.Service, func(), error)

// run validates the whole file before dial is called. A dry run never dials.
func run(ctx context.Context, logger *slog.Logger, opts options, dial dialFunc) (importer.Report, error) {
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return importer.Report{}, fmt.Errorf("read lexicon file: %w", err)
	}

	validated, err := importer.NewService(logger, nil, nil).
		Import(ctx, bytes.NewReader(data), importer.Options{Comma: opts.comma, DryRun: true})
	if err != nil || opts.dryRun {
		return validated, err
	}

	svc, closeFn, err := dial(ctx)
	if err != nil {
		return importer.Report{}, err
	}
	defer closeFn()

	return svc.Import(ctx, bytes.NewReader(data), importer.Options{Comma: opts.comma})
}

func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	for _, r := range results {
		logger.Info("migration applied", slog.String("source", r.Source.Path), slog.Duration("duration", r.Duration))
	}
	return nil
}
