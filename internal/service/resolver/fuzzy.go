package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// minSubstring is the shortest substring ever sent to the store.
const minSubstring = 2

type likeStore interface {
	// FindLike returns one entry whose headword or root matches the ILIKE
	// pattern, or nil when no row matches.
	FindLike(ctx context.Context, pattern string) (*domain.LexiconEntry, error)
}

// Fuzzy resolves candidate words by greedy substring relaxation: each word is
// searched as %word%, and on a miss its last character is dropped and the search
// repeated, down to two characters. The first row found wins.
type Fuzzy struct {
	log   *slog.Logger
	store likeStore
}

// NewFuzzy creates a Fuzzy resolver over store.
func NewFuzzy(logger *slog.Logger, store likeStore) *Fuzzy {
	return &Fuzzy{
		log:   logger.With("service", "fuzzy"),
		store: store,
	}
}

// Resolve walks candidates left to right and returns the first fuzzy hit.
// A store error or a done ctx aborts the walk; the returned Resolution still
// reports how many queries were spent.
func (f *Fuzzy) Resolve(ctx context.Context, candidates []string) (domain.Resolution, error) {
	queries := 0

	for _, candidate := range candidates {
		word := candidate

		for utf8.RuneCountInString(word) >= minSubstring {
			if err := ctx.Err(); err != nil {
				return domain.NoResolution(queries), fmt.Errorf("relaxation aborted: %w", err)
			}

			queries++
			pattern := likePattern(word)

			f.log.DebugContext(ctx, "relaxation attempt",
				slog.Int("attempt", queries),
				slog.String("candidate", candidate),
				slog.String("pattern", pattern),
			)

			entry, err := f.store.FindLike(ctx, pattern)
			if err != nil {
				return domain.NoResolution(queries), fmt.Errorf("find like %q: %w", pattern, err)
			}
			if entry != nil {
				f.log.InfoContext(ctx, "fuzzy match",
					slog.String("headword", entry.Headword),
					slog.String("substring", word),
					slog.Int("queries", queries),
				)
				return domain.Resolution{
					Entry:     entry,
					Match:     domain.MatchFuzzy,
					Candidate: word,
					Queries:   queries,
				}, nil
			}

			_, size := utf8.DecodeLastRuneInString(word)
			word = word[:len(word)-size]
		}
	}

	f.log.InfoContext(ctx, "no fuzzy match",
		slog.Any("candidates", candidates),
		slog.Int("queries", queries),
	)
	return domain.NoResolution(queries), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps word for substring containment, escaping LIKE metacharacters.
func likePattern(word string) string {
	return "%" + likeEscaper.Replace(word) + "%"
}
