package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// LexiconFixture is the standard integration data set. No row contains "zz",
// and ids are assigned in slice order by SeedLexicon.
var LexiconFixture = []domain.LexiconEntry{
	{Headword: "focus", Root: "focus", Definition: "(n) hearth, fireplace", French: "foyer", Spanish: "foco", Italian: "fuoco"},
	{Headword: "inquire", Root: "inquirere", Definition: "(v) seek, ask", French: "enquérir", Spanish: "inquirir", Italian: "inquisire"},
	{Headword: "aviary", Root: "aviarium", Definition: "(n) bird house", French: "volière", Spanish: "aviario", Italian: "aviario"},
	{Headword: "spelunker", Root: "spelunca", Definition: "(n) cave, cavern", French: "spélonque", Spanish: "espelunca", Italian: "spelonca"},
	{Headword: "absent", Root: "absens", Definition: "(adj) not present", French: "absent", Spanish: "ausente", Italian: "assente"},
}

// ResetLexicon empties the latin table and restarts its id sequence.
func ResetLexicon(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `TRUNCATE latin RESTART IDENTITY`); err != nil {
		t.Fatalf("testhelper: ResetLexicon: %v", err)
	}
}

// SeedLexicon resets the table and inserts rows in order. Returns the rows
// with their assigned ids.
func SeedLexicon(t *testing.T, pool *pgxpool.Pool, rows []domain.LexiconEntry) []domain.LexiconEntry {
	t.Helper()
	ctx := context.Background()

	ResetLexicon(t, pool)

	out := make([]domain.LexiconEntry, len(rows))
	for i, r := range rows {
		err := pool.QueryRow(ctx,
			`INSERT INTO latin (en, la, defn, fr, es, it)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			r.Headword, r.Root, r.Definition, r.French, r.Spanish, r.Italian,
		).Scan(&r.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedLexicon insert %q: %v", r.Headword, err)
		}
		out[i] = r
	}
	return out
}
