// Package resolver resolves user words against the lexicon: exact hits come from
// the in-memory index, misses fall back to fuzzy substring search in the store.
package resolver

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/metrics"
)

type lookupParser interface {
	ParseLookup(text string) ([]string, error)
}

type exactIndex interface {
	Entry(word string) (domain.LexiconEntry, bool)
}

type fuzzyResolver interface {
	Resolve(ctx context.Context, candidates []string) (domain.Resolution, error)
}

type recorder interface {
	ObserveResolution(outcome string, queries int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string, int) {}

// Service sequences parse, exact index check and fuzzy fallback. It owns no
// mutable state; the index is shared read-only.
type Service struct {
	log     *slog.Logger
	parser  lookupParser
	index   exactIndex
	fuzzy   fuzzyResolver
	metrics recorder
}

// NewService creates a resolution Service. rec may be nil.
func NewService(
	logger *slog.Logger,
	parser lookupParser,
	index exactIndex,
	fuzzy fuzzyResolver,
	rec recorder,
) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		log:     logger.With("service", "resolver"),
		parser:  parser,
		index:   index,
		fuzzy:   fuzzy,
		metrics: rec,
	}
}

// ResolveWord parses a "/q" command and resolves its candidates.
// A grammar mismatch is returned as domain.ErrUsage.
func (s *Service) ResolveWord(ctx context.Context, text string) (domain.Resolution, error) {
	words, err := s.parser.ParseLookup(text)
	if err != nil {
		return domain.NoResolution(0), err
	}
	return s.Resolve(ctx, words)
}

// Resolve returns the first exact index hit among words, else the fuzzy result.
// An empty list resolves to nothing without touching index or store. Store
// failures are logged and reported as domain.ErrBackingStore.
func (s *Service) Resolve(ctx context.Context, words []string) (domain.Resolution, error) {
	if len(words) == 0 {
		s.metrics.ObserveResolution(metrics.OutcomeNone, 0)
		return domain.NoResolution(0), nil
	}

	for _, w := range words {
		if entry, ok := s.index.Entry(w); ok {
			s.log.DebugContext(ctx, "exact match", slog.String("headword", w))
			s.metrics.ObserveResolution(metrics.OutcomeExact, 0)
			return domain.Resolution{Entry: &entry, Match: domain.MatchExact, Candidate: w}, nil
		}
	}

	res, err := s.fuzzy.Resolve(ctx, words)
	if err != nil {
		s.log.ErrorContext(ctx, "fuzzy resolution failed",
			slog.Any("candidates", words),
			slog.Int("queries", res.Queries),
			slog.String("error", err.Error()),
		)
		s.metrics.ObserveResolution(metrics.OutcomeError, res.Queries)
		return domain.NoResolution(res.Queries), domain.ErrBackingStore
	}

	if res.Found() {
		s.metrics.ObserveResolution(metrics.OutcomeFuzzy, res.Queries)
	} else {
		s.metrics.ObserveResolution(metrics.OutcomeNone, res.Queries)
	}
	return res, nil
}
