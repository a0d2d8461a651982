// Command server builds the lexicon index and serves the resolve, command and
// health endpoints until SIGINT or SIGTERM.
//
// Configuration comes from CONFIG_PATH (YAML) and the environment.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/dante-lexicon/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}
