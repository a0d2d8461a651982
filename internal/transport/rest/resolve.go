package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/query"
)

var resolveUsage = fmt.Sprintf("usage: /api/v1/resolve?q=<word>[&q=<word>...] (at most %d words of up to %d letters)",
	query.MaxLookupWords, query.MaxLookupWordLen)

type wordsParser interface {
	ParseWords(values []string) ([]string, error)
}

type wordsResolver interface {
	Resolve(ctx context.Context, words []string) (domain.Resolution, error)
}

// ResolveHandler serves lexicon lookups over HTTP.
type ResolveHandler struct {
	log      *slog.Logger
	parser   wordsParser
	resolver wordsResolver
}

// NewResolveHandler creates a ResolveHandler.
func NewResolveHandler(logger *slog.Logger, parser wordsParser, resolver wordsResolver) *ResolveHandler {
	return &ResolveHandler{
		log:      logger.With("handler", "resolve"),
		parser:   parser,
		resolver: resolver,
	}
}

// EntryResponse is the JSON form of a lexicon entry.
type EntryResponse struct {
	ID         int64  `json:"id"`
	Headword   string `json:"en"`
	Root       string `json:"la"`
	Definition string `json:"defn"`
	French     string `json:"fr"`
	Spanish    string `json:"es"`
	Italian    string `json:"it"`
}

// ResolveResponse is the JSON response for /api/v1/resolve.
type ResolveResponse struct {
	Match     string         `json:"match"`
	Candidate string         `json:"candidate,omitempty"`
	Queries   int            `json:"queries"`
	Entry     *EntryResponse `json:"entry,omitempty"`
}

// Resolve handles GET /api/v1/resolve?q=...
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	words, err := h.parser.ParseWords(r.URL.Query()["q"])
	if err != nil {
		writeError(w, http.StatusBadRequest, resolveUsage)
		return
	}

	res, err := h.resolver.Resolve(r.Context(), words)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBackingStore):
			writeError(w, http.StatusServiceUnavailable, "lookup failed")
		default:
			h.log.ErrorContext(r.Context(), "resolve failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toResolveResponse(res))
}

func toResolveResponse(res domain.Resolution) ResolveResponse {
	out := ResolveResponse{
		Match:     res.Match.String(),
		Candidate: res.Candidate,
		Queries:   res.Queries,
	}
	if res.Found() {
		e := res.Entry
		out.Entry = &EntryResponse{
			ID:         e.ID,
			Headword:   e.Headword,
			Root:       e.Root,
			Definition: e.Definition,
			French:     e.French,
			Spanish:    e.Spanish,
			Italian:    e.Italian,
		}
	}
	return out
}
