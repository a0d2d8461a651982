package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dante-lexicon/internal/config"
	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/query"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockResolver struct {
	ResolveWordFunc func(ctx context.Context, text string) (domain.Resolution, error)
	texts           []string
}

func (m *mockResolver) ResolveWord(ctx context.Context, text string) (domain.Resolution, error) {
	m.texts = append(m.texts, text)
	return m.ResolveWordFunc(ctx, text)
}

type mockTranslator struct {
	TranslateFunc func(ctx context.Context, src, trg domain.Language, text string) (domain.Translation, error)
	UsageFunc     func(ctx context.Context) (domain.Usage, error)
}

func (m *mockTranslator) Translate(ctx context.Context, src, trg domain.Language, text string) (domain.Translation, error) {
	return m.TranslateFunc(ctx, src, trg, text)
}

func (m *mockTranslator) Usage(ctx context.Context) (domain.Usage, error) {
	return m.UsageFunc(ctx)
}

type mockRecorder struct {
	commands []string
}

func (m *mockRecorder) ObserveCommand(c string) { m.commands = append(m.commands, c) }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var absent = domain.LexiconEntry{
	ID: 5, Headword: "absent", Root: "absens", Definition: "(adj) not present",
	French: "absent", Spanish: "ausente", Italian: "assente",
}

func newTestDispatcher(res wordResolver, tr translator, policy chatPolicy, rec commandRecorder) *Dispatcher {
	if policy == nil {
		policy = config.BotConfig{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(logger, res, query.NewParser(nil), tr, policy, rec)
}

func noResolver(t *testing.T) *mockResolver {
	return &mockResolver{ResolveWordFunc: func(context.Context, string) (domain.Resolution, error) {
		t.Error("resolver must not be called")
		return domain.NoResolution(0), nil
	}}
}

func noTranslator(t *testing.T) *mockTranslator {
	return &mockTranslator{
		TranslateFunc: func(context.Context, domain.Language, domain.Language, string) (domain.Translation, error) {
			t.Error("Translate must not be called")
			return domain.Translation{}, nil
		},
		UsageFunc: func(context.Context) (domain.Usage, error) {
			t.Error("Usage must not be called")
			return domain.Usage{}, nil
		},
	}
}

func handle(t *testing.T, d *Dispatcher, text string) Reply {
	t.Helper()
	reply, err := d.Handle(context.Background(), Message{ChatID: 42, Text: text})
	require.NoError(t, err)
	return reply
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDispatcher_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  domain.Resolution
		err  error
		want string
	}{
		{
			name: "exact",
			res:  domain.Resolution{Entry: &absent, Match: domain.MatchExact},
			want: "Here's what I've got for absent,\nfrom the latin: absens, (adj) not present\ndescendants:\nfr absent\nes ausente\nit assente",
		},
		{
			name: "fuzzy",
			res:  domain.Resolution{Entry: &absent, Match: domain.MatchFuzzy, Queries: 3},
			want: "❔ Meno male, I found something similar: absent,\nfrom the latin: absens, (adj) not present\ndescendants:\nfr absent\nes ausente\nit assente",
		},
		{name: "none", res: domain.NoResolution(2), want: ReplyNone},
		{name: "usage", err: domain.ErrUsage, want: ReplyLookupUsage},
		{name: "store failure", err: domain.ErrBackingStore, want: ReplyLookupFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := &mockResolver{ResolveWordFunc: func(context.Context, string) (domain.Resolution, error) {
				return tt.res, tt.err
			}}
			d := newTestDispatcher(res, noTranslator(t), nil, nil)

			assert.Equal(t, tt.want, handle(t, d, "/q foo bar absent").Text)
		})
	}
}

func TestDispatcher_Lookup_StripsBotSuffix(t *testing.T) {
	t.Parallel()

	res := &mockResolver{ResolveWordFunc: func(context.Context, string) (domain.Resolution, error) {
		return domain.NoResolution(0), nil
	}}
	rec := &mockRecorder{}
	d := newTestDispatcher(res, noTranslator(t), nil, rec)

	handle(t, d, "/Q@dante_bot absent")

	assert.Equal(t, []string{"/q absent"}, res.texts)
	assert.Equal(t, []string{"/q"}, rec.commands)
}

func TestDispatcher_Translate(t *testing.T) {
	t.Parallel()

	var gotSrc, gotTrg domain.Language
	var gotText string
	tr := &mockTranslator{TranslateFunc: func(_ context.Context, src, trg domain.Language, text string) (domain.Translation, error) {
		gotSrc, gotTrg, gotText = src, trg, text
		return domain.Translation{Text: "bonjour le monde"}, nil
	}}
	d := newTestDispatcher(noResolver(t), tr, nil, nil)

	reply := handle(t, d, "/t en fr hello world")

	assert.Equal(t, "bonjour le monde", reply.Text)
	assert.Equal(t, domain.LangEN, gotSrc)
	assert.Equal(t, domain.LangFR, gotTrg)
	assert.Equal(t, "hello world", gotText)
}

func TestDispatcher_Translate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		provErr error
		want    string
	}{
		{name: "usage", text: "/t en", want: ReplyTranslateUsage},
		{name: "unknown source", text: "/t xx fr hello", want: ReplyUnknownSource},
		{name: "unknown target", text: "/t en xx hello", want: ReplyUnknownTarget},
		{name: "provider failure", text: "/t en fr hello", provErr: errors.New("status 456"), want: ReplyBadRequest},
		{name: "disabled", text: "/t en fr hello", provErr: domain.ErrTranslationDisabled, want: ReplyTranslationDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := &mockTranslator{TranslateFunc: func(context.Context, domain.Language, domain.Language, string) (domain.Translation, error) {
				if tt.provErr == nil {
					t.Error("Translate must not be called")
				}
				return domain.Translation{}, tt.provErr
			}}
			d := newTestDispatcher(noResolver(t), tr, nil, nil)

			assert.Equal(t, tt.want, handle(t, d, tt.text).Text)
		})
	}
}

func TestDispatcher_Usage(t *testing.T) {
	t.Parallel()

	tr := &mockTranslator{UsageFunc: func(context.Context) (domain.Usage, error) {
		return domain.Usage{CharacterCount: 180118, CharacterLimit: 500000}, nil
	}}
	d := newTestDispatcher(noResolver(t), tr, nil, nil)

	assert.Equal(t, "180118 / 500000", handle(t, d, "/u").Text)

	tr.UsageFunc = func(context.Context) (domain.Usage, error) { return domain.Usage{}, errors.New("boom") }
	assert.Equal(t, ReplyBadRequest, handle(t, d, "/u").Text)
}

func TestDispatcher_HelpInfoAndUnknown(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(noResolver(t), noTranslator(t), nil, nil)

	assert.Equal(t, helpText, handle(t, d, "/h").Text)
	assert.Equal(t, helpText, handle(t, d, "/start").Text)
	assert.Equal(t, helpText, handle(t, d, "hello").Text)
	assert.Equal(t, helpText, handle(t, d, "").Text)
	assert.Equal(t, infoText, handle(t, d, "/info").Text)
}

func TestDispatcher_AllowList(t *testing.T) {
	t.Parallel()

	res := &mockResolver{ResolveWordFunc: func(context.Context, string) (domain.Resolution, error) {
		return domain.NoResolution(0), nil
	}}
	rec := &mockRecorder{}
	d := newTestDispatcher(res, noTranslator(t), config.BotConfig{AllowedChatIDs: []int64{7}}, rec)

	reply, err := d.Handle(context.Background(), Message{ChatID: 42, Text: "/q absent"})
	require.NoError(t, err)
	assert.True(t, reply.Skip)
	assert.Empty(t, reply.Text)
	assert.Empty(t, res.texts)
	assert.Empty(t, rec.commands)

	reply, err = d.Handle(context.Background(), Message{ChatID: 7, Text: "/q absent"})
	require.NoError(t, err)
	assert.False(t, reply.Skip)
	assert.Equal(t, ReplyNone, reply.Text)
}

func TestDispatcher_ChatID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy config.BotConfig
		msg    Message
		want   string
	}{
		{"open bot", config.BotConfig{}, Message{ChatID: 42, Text: "/id"}, "42"},
		{"chat outside allow list", config.BotConfig{AllowedChatIDs: []int64{7}}, Message{ChatID: -100123, Text: "/id"}, "-100123"},
		{"bot suffix", config.BotConfig{AllowedChatIDs: []int64{7}}, Message{ChatID: 9, Text: "/ID@dante_bot"}, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &mockRecorder{}
			d := newTestDispatcher(noResolver(t), noTranslator(t), tt.policy, rec)

			reply, err := d.Handle(context.Background(), tt.msg)
			require.NoError(t, err)
			assert.False(t, reply.Skip)
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, []string{"/id"}, rec.commands)
		})
	}
}

func TestDispatcher_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := &mockResolver{ResolveWordFunc: func(context.Context, string) (domain.Resolution, error) {
		return domain.NoResolution(0), domain.ErrBackingStore
	}}
	d := newTestDispatcher(res, noTranslator(t), nil, nil)

	_, err := d.Handle(ctx, Message{ChatID: 1, Text: "/q absent"})
	assert.ErrorIs(t, err, context.Canceled)
}
