package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/lexicon"
	"github.com/heartmarshall/dante-lexicon/internal/metrics"
	"github.com/heartmarshall/dante-lexicon/internal/query"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockFuzzy struct {
	ResolveFunc func(ctx context.Context, candidates []string) (domain.Resolution, error)
	calls       int
}

func (m *mockFuzzy) Resolve(ctx context.Context, candidates []string) (domain.Resolution, error) {
	m.calls++
	return m.ResolveFunc(ctx, candidates)
}

type mockRecorder struct {
	outcomes []string
}

func (m *mockRecorder) ObserveResolution(outcome string, _ int) {
	m.outcomes = append(m.outcomes, outcome)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(t *testing.T, fuzzy fuzzyResolver, rec recorder) *Service {
	t.Helper()

	idx, err := lexicon.Build(fixtureRows)
	require.NoError(t, err)

	return NewService(newTestLogger(), query.NewParser(nil), idx, fuzzy, rec)
}

func failingFuzzy(t *testing.T) *mockFuzzy {
	return &mockFuzzy{ResolveFunc: func(context.Context, []string) (domain.Resolution, error) {
		t.Error("fuzzy resolver must not be called")
		return domain.NoResolution(0), nil
	}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestService_ResolveWord_ExactHitSkipsStore(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	svc := newTestService(t, failingFuzzy(t), rec)

	res, err := svc.ResolveWord(context.Background(), "/q foo bar absent")

	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, domain.MatchExact, res.Match)
	assert.Equal(t, "absent", res.Entry.Headword)
	assert.Equal(t, "absens", res.Entry.Root)
	assert.Equal(t, 0, res.Queries)
	assert.Equal(t, []string{metrics.OutcomeExact}, rec.outcomes)
}

func TestService_ResolveWord_FirstExactHitInInputOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingFuzzy(t), nil)

	res, err := svc.ResolveWord(context.Background(), "/q zzz aviary focus")

	require.NoError(t, err)
	assert.Equal(t, "aviary", res.Entry.Headword)
}

func TestService_ResolveWord_UsageError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingFuzzy(t), nil)

	for _, text := range []string{"/q", "/q a", "hello"} {
		res, err := svc.ResolveWord(context.Background(), text)
		assert.ErrorIs(t, err, domain.ErrUsage, text)
		assert.False(t, res.Found())
	}
}

func TestService_ResolveWord_EmptyCandidatesNoResult(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	svc := newTestService(t, failingFuzzy(t), rec)

	res, err := svc.ResolveWord(context.Background(), "/q fo0 b4r")

	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, domain.MatchNone, res.Match)
	assert.Equal(t, []string{metrics.OutcomeNone}, rec.outcomes)
}

func TestService_ResolveWord_DelegatesFullListToFuzzy(t *testing.T) {
	t.Parallel()

	var got []string
	fuzzy := &mockFuzzy{ResolveFunc: func(_ context.Context, candidates []string) (domain.Resolution, error) {
		got = candidates
		return domain.Resolution{Entry: &fixtureRows[0], Match: domain.MatchFuzzy, Candidate: "fo", Queries: 2}, nil
	}}
	rec := &mockRecorder{}
	svc := newTestService(t, fuzzy, rec)

	res, err := svc.ResolveWord(context.Background(), "/q zzz Foo")

	require.NoError(t, err)
	assert.Equal(t, []string{"zzz", "foo"}, got)
	assert.Equal(t, "focus", res.Entry.Headword)
	assert.Equal(t, domain.MatchFuzzy, res.Match)
	assert.Equal(t, 1, fuzzy.calls)
	assert.Equal(t, []string{metrics.OutcomeFuzzy}, rec.outcomes)
}

func TestService_ResolveWord_StoreErrorIsGeneric(t *testing.T) {
	t.Parallel()

	rawErr := errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")
	fuzzy := &mockFuzzy{ResolveFunc: func(context.Context, []string) (domain.Resolution, error) {
		return domain.NoResolution(3), rawErr
	}}
	rec := &mockRecorder{}
	svc := newTestService(t, fuzzy, rec)

	res, err := svc.ResolveWord(context.Background(), "/q zzz")

	require.ErrorIs(t, err, domain.ErrBackingStore)
	assert.NotErrorIs(t, err, rawErr, "raw transport error must not leak")
	assert.False(t, res.Found())
	assert.Equal(t, 3, res.Queries)
	assert.Equal(t, []string{metrics.OutcomeError}, rec.outcomes)
}

func TestService_EndToEndWithFixtureStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		words []string
		want  string
		match domain.MatchKind
	}{
		{words: []string{"zzz", "spelunkerzzz"}, want: "spelunker", match: domain.MatchFuzzy},
		{words: []string{"foo"}, want: "focus", match: domain.MatchFuzzy},
		{words: []string{"quire"}, want: "inquire", match: domain.MatchFuzzy},
		{words: []string{"viarium"}, want: "aviary", match: domain.MatchFuzzy},
		{words: []string{"zzz"}, want: "", match: domain.MatchNone},
		{words: []string{"zzz", "spelunker"}, want: "spelunker", match: domain.MatchExact},
	}
	for _, tt := range tests {
		store := &fixtureStore{rows: fixtureRows}
		svc := newTestService(t, NewFuzzy(newTestLogger(), store), nil)

		res, err := svc.Resolve(context.Background(), tt.words)
		require.NoError(t, err)
		assert.Equal(t, tt.want, headwordOf(res), "%v", tt.words)
		assert.Equal(t, tt.match, res.Match, "%v", tt.words)
		if tt.match == domain.MatchExact {
			assert.Empty(t, store.patterns, "exact path must not query the store")
		}
	}
}
