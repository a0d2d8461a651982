// Package importer loads curated lexicon rows into the backing store. It is the
// only writer of the lexicon and runs offline, outside the serving process.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

type lexiconRepo interface {
	Upsert(ctx context.Context, e domain.LexiconEntry) (int64, bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options control a single import run.
type Options struct {
	// Comma is the field delimiter; zero means ';'.
	Comma rune
	// DryRun parses and validates without writing.
	DryRun bool
}

// Report summarizes an import run.
type Report struct {
	Rows     int
	Inserted int
	Updated  int
	Warnings []string
	Duration time.Duration
}

// Service upserts parsed rows in a single transaction.
type Service struct {
	log  *slog.Logger
	repo lexiconRepo
	tx   txManager
}

// NewService creates an importer Service. repo and tx may be nil when the
// service only runs dry imports.
func NewService(logger *slog.Logger, repo lexiconRepo, tx txManager) *Service {
	return &Service{
		log:  logger.With("service", "importer"),
		repo: repo,
		tx:   tx,
	}
}

// Import parses r and upserts every row. Either all rows are written or none.
// A leading id that disagrees with the stored row is reported as a warning.
func (s *Service) Import(ctx context.Context, r io.Reader, opts Options) (Report, error) {
	start := time.Now()

	comma := opts.Comma
	if comma == 0 {
		comma = ';'
	}

	rows, err := Parse(r, comma)
	if err != nil {
		return Report{}, fmt.Errorf("parse input: %w", err)
	}

	report := Report{Rows: len(rows)}
	if opts.DryRun || len(rows) == 0 {
		report.Duration = time.Since(start)
		s.log.InfoContext(ctx, "import validated", slog.Int("rows", report.Rows), slog.Bool("dry_run", opts.DryRun))
		return report, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var inserted, updated int
		var warnings []string

		for _, row := range rows {
			id, isNew, err := s.repo.Upsert(ctx, row.Entry)
			if err != nil {
				return fmt.Errorf("line %d (%q): %w", row.Line, row.Entry.Headword, err)
			}

			if isNew {
				inserted++
			} else {
				updated++
				if row.ID != 0 && row.ID != id {
					w := fmt.Sprintf("line %d: row id mismatch for %q: expected %d, found %d", row.Line, row.Entry.Headword, row.ID, id)
					warnings = append(warnings, w)
					s.log.WarnContext(ctx, "row id mismatch",
						slog.Int("line", row.Line),
						slog.String("headword", row.Entry.Headword),
						slog.Int64("expected", row.ID),
						slog.Int64("found", id),
					)
				}
			}
			s.log.DebugContext(ctx, "row upserted",
				slog.String("headword", row.Entry.Headword),
				slog.Int64("id", id),
				slog.Bool("inserted", isNew),
			)
		}

		report.Inserted, report.Updated, report.Warnings = inserted, updated, warnings
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("import: %w", err)
	}

	report.Duration = time.Since(start)
	s.log.InfoContext(ctx, "import completed",
		slog.Int("rows", report.Rows),
		slog.Int("inserted", report.Inserted),
		slog.Int("updated", report.Updated),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}
