// Package deepl is a client for the DeepL translation HTTP API.
package deepl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/dante-lexicon/internal/config"
	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

const (
	proBaseURL  = "https://api.deepl.com"
	freeBaseURL = "https://api-free.deepl.com"

	freeKeySuffix = ":fx"
	retryDelay    = 500 * time.Millisecond
	maxErrorBody  = 4 << 10
)

// StatusError is returned for any non-200 API response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("deepl: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("deepl: unexpected status %d: %s", e.Code, e.Message)
}

// Provider talks to the DeepL API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. Keys ending in ":fx" use the free API host
// unless cfg.BaseURL overrides it.
func NewProvider(cfg config.TranslateConfig, logger *slog.Logger) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = proBaseURL
		if strings.HasSuffix(cfg.APIKey, freeKeySuffix) {
			baseURL = freeBaseURL
		}
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "deepl"),
	}
}

// Translate translates text from src to trg. Regional source variants
// (EN-US, PT-BR) are sent as their base language, which is all the API accepts
// for source_lang.
func (p *Provider) Translate(ctx context.Context, src, trg domain.Language, text string) (domain.Translation, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", baseLanguage(src))
	form.Set("target_lang", string(trg))
	body := form.Encode()

	p.log.DebugContext(ctx, "deepl translate request",
		slog.String("source", string(src)),
		slog.String("target", string(trg)),
		slog.Int("chars", len(text)),
	)

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/translate", strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	var out translateResponse
	if err := p.call(ctx, "translate", newReq, &out); err != nil {
		return domain.Translation{}, err
	}
	if len(out.Translations) == 0 {
		return domain.Translation{}, errors.New("deepl: empty translations in response")
	}

	tr := out.Translations[0]
	return domain.Translation{
		Text:           tr.Text,
		DetectedSource: domain.Language(tr.DetectedSourceLanguage),
	}, nil
}

// Usage returns character usage for the current billing period.
func (p *Provider) Usage(ctx context.Context) (domain.Usage, error) {
	newReq := func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/usage", nil)
	}

	var out usageResponse
	if err := p.call(ctx, "usage", newReq, &out); err != nil {
		return domain.Usage{}, err
	}
	return domain.Usage{CharacterCount: out.CharacterCount, CharacterLimit: out.CharacterLimit}, nil
}

func (p *Provider) call(ctx context.Context, op string, newReq func() (*http.Request, error), out any) error {
	resp, err := p.doWithRetry(ctx, op, newReq)
	if err != nil {
		p.log.ErrorContext(ctx, "deepl request failed", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("deepl: %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("deepl: decode %s json: %w", op, err)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
// newReq is called per attempt so request bodies are never reused.
func (p *Provider) doWithRetry(ctx context.Context, op string, newReq func() (*http.Request, error)) (*http.Response, error) {
	send := func() (*http.Response, error) {
		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "DeepL-Auth-Key "+p.apiKey)
		return p.httpClient.Do(req)
	}

	resp, err := send()

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "deepl retry", slog.String("op", op), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	timer := time.NewTimer(retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return send()
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var e errorResponse
	if json.Unmarshal(raw, &e) != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(raw))
	}
	return &StatusError{Code: resp.StatusCode, Message: e.Message}
}

func baseLanguage(l domain.Language) string {
	s := string(l)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}
