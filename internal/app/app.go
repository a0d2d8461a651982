package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/dante-lexicon/internal/adapter/postgres"
	"github.com/heartmarshall/dante-lexicon/internal/adapter/postgres/latin"
	"github.com/heartmarshall/dante-lexicon/internal/adapter/provider/deepl"
	"github.com/heartmarshall/dante-lexicon/internal/adapter/provider/translate"
	"github.com/heartmarshall/dante-lexicon/internal/auth"
	"github.com/heartmarshall/dante-lexicon/internal/config"
	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/lexicon"
	"github.com/heartmarshall/dante-lexicon/internal/metrics"
	"github.com/heartmarshall/dante-lexicon/internal/query"
	"github.com/heartmarshall/dante-lexicon/internal/service/command"
	"github.com/heartmarshall/dante-lexicon/internal/service/resolver"
	"github.com/heartmarshall/dante-lexicon/internal/transport/middleware"
	"github.com/heartmarshall/dante-lexicon/internal/transport/rest"
)

type lexiconLister interface {
	ListAll(ctx context.Context) ([]domain.LexiconEntry, error)
}

type translator interface {
	Translate(ctx context.Context, src, trg domain.Language, text string) (domain.Translation, error)
	Usage(ctx context.Context) (domain.Usage, error)
}

// Run is the application entry point. It loads configuration, builds the
// lexicon index from the store, wires the services and serves HTTP until ctx
// is cancelled. A failed index build aborts startup.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := latin.New(pool)

	idx, err := loadIndex(ctx, logger, repo, cfg.Lexicon.LoadTimeout)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	parser := query.NewParser(nil)
	resolverSvc := resolver.NewService(
		logger,
		parser,
		idx,
		resolver.NewFuzzy(logger, repo),
		metrics.NewResolver(reg),
	)

	dispatcher := command.NewDispatcher(
		logger,
		resolverSvc,
		parser,
		newTranslator(cfg.Translate, logger),
		cfg.Bot,
		metrics.NewCommands(reg),
	)

	var limit middleware.Middleware
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer rl.Stop()
		limit = rl.Limit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	var relayAuth middleware.Middleware
	if cfg.Auth.Enabled() {
		relayAuth = middleware.RelayAuth(auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL))
	} else {
		logger.Warn("relay auth disabled: /api/v1/commands is open")
	}

	router := rest.NewRouter(rest.RouterDeps{
		Logger:    logger,
		Health:    rest.NewHealthHandler(pool, idx, BuildVersion()),
		Resolve:   rest.NewResolveHandler(logger, parser, resolverSvc),
		Commands:  rest.NewCommandHandler(logger, dispatcher),
		Gatherer:  reg,
		Recorder:  metrics.NewHTTP(reg),
		RateLimit: limit,
		RelayAuth: relayAuth,

		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// loadIndex reads every lexicon row once and builds the in-memory index.
func loadIndex(ctx context.Context, logger *slog.Logger, store lexiconLister, timeout time.Duration) (*lexicon.Index, error) {
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	rows, err := store.ListAll(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	idx, err := lexicon.Build(rows)
	if err != nil {
		return nil, err
	}

	attrs := []any{
		slog.Int("entries", idx.Len()),
		slog.Duration("duration", time.Since(start)),
	}
	if empty := idx.EmptyLetters(); len(empty) > 0 {
		attrs = append(attrs, slog.String("empty_letters", string(empty)))
	}
	logger.Info("lexicon index built", attrs...)

	return idx, nil
}

func newTranslator(cfg config.TranslateConfig, logger *slog.Logger) translator {
	if !cfg.Enabled() {
		logger.Warn("translation disabled: no API key configured")
		return translate.NewStub()
	}
	return deepl.NewProvider(cfg, logger)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
