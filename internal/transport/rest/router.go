package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/dante-lexicon/internal/transport/middleware"
)

type requestRecorder interface {
	ObserveRequest(route, method, code string, elapsed time.Duration)
}

// RouterDeps holds everything NewRouter mounts. RateLimit may be nil to
// disable per-client limiting on the API routes; RelayAuth may be nil to leave
// the command endpoint open. A positive RequestTimeout puts a deadline on the
// API request contexts.
type RouterDeps struct {
	Logger    *slog.Logger
	Health    *HealthHandler
	Resolve   *ResolveHandler
	Commands  *CommandHandler
	Gatherer  prometheus.Gatherer
	Recorder  requestRecorder
	RateLimit middleware.Middleware
	RelayAuth middleware.Middleware

	RequestTimeout time.Duration
}

// NewRouter builds the HTTP handler tree.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	route := func(pattern, label string, h http.HandlerFunc, stack middleware.Stack) {
		mux.Handle(pattern, middleware.Stack{middleware.Metrics(d.Recorder, label)}.With(stack...).Then(h))
	}

	api := middleware.Stack{d.RateLimit, middleware.Timeout(d.RequestTimeout)}

	route("GET /live", "live", d.Health.Live, nil)
	route("GET /ready", "ready", d.Health.Ready, nil)
	route("GET /health", "health", d.Health.Health, nil)
	route("GET /api/v1/resolve", "resolve", d.Resolve.Resolve, api)
	route("POST /api/v1/commands", "commands", d.Commands.Handle, api.With(d.RelayAuth))

	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
	)(mux)
}
