// Package latin implements the lexicon repository over the "latin" table.
// The serving path only reads; Upsert is used by the offline importer.
package latin

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/dante-lexicon/internal/adapter/postgres"
	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

const table = "latin"

var (
	columns       = []string{"id", "en", "la", "defn", "fr", "es", "it"}
	insertColumns = []string{"en", "la", "defn", "fr", "es", "it"}

	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
)

const upsertSuffix = `ON CONFLICT (en) DO UPDATE SET ` +
	`la = EXCLUDED.la, defn = EXCLUDED.defn, fr = EXCLUDED.fr, es = EXCLUDED.es, it = EXCLUDED.it ` +
	`RETURNING id, (xmax = 0) AS inserted`

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lexicon repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ListAll returns every lexicon row in id order. Used once at startup to build
// the in-memory index.
func (r *Repo) ListAll(ctx context.Context) ([]domain.LexiconEntry, error) {
	sql, args, err := psql.Select(columns...).From(table).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []domain.LexiconEntry
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, "*")
	}
	return rows, nil
}

// GetByHeadword returns the row whose headword equals en.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByHeadword(ctx context.Context, en string) (*domain.LexiconEntry, error) {
	sql, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"en": en}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rows []domain.LexiconEntry
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, en)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, en, domain.ErrNotFound)
	}
	return &rows[0], nil
}

// FindLike returns the lowest-id row whose headword or root matches the ILIKE
// pattern, or nil when nothing matches.
func (r *Repo) FindLike(ctx context.Context, pattern string) (*domain.LexiconEntry, error) {
	sql, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Or{
			squirrel.ILike{"en": pattern},
			squirrel.ILike{"la": pattern},
		}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build like query: %w", err)
	}

	var rows []domain.LexiconEntry
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, pattern)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert inserts the entry or, when its headword exists, overwrites the other
// columns. It returns the row id and whether a new row was inserted.
func (r *Repo) Upsert(ctx context.Context, e domain.LexiconEntry) (int64, bool, error) {
	sql, args, err := psql.Insert(table).
		Columns(insertColumns...).
		Values(e.Headword, e.Root, e.Definition, e.French, e.Spanish, e.Italian).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build upsert query: %w", err)
	}

	var (
		id       int64
		inserted bool
	)
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id, &inserted); err != nil {
		return 0, false, postgres.MapError(err, table, e.Headword)
	}
	return id, inserted, nil
}
