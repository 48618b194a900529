// Package app assembles the application: tracing, database pool, history
// store, Gemini client, and the chat agent, wired together in dependency
// order with a single Close for teardown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parley0/parley/internal/chat"
	"github.com/parley0/parley/internal/config"
	"github.com/parley0/parley/internal/history"
)

// shutdownTimeout bounds teardown work such as flushing buffered spans.
const shutdownTimeout = 5 * time.Second

// App is the application container. Setup populates it in dependency
// order; Close releases everything in reverse.
type App struct {
	Config *config.Config

	// Pool is the PostgreSQL connection pool backing the history store.
	// The readiness probe also pings it.
	Pool *pgxpool.Pool

	// Store is the persisted conversation log.
	Store *history.Store

	// Agent runs one conversation turn per request.
	Agent *chat.Agent

	// Recorder appends turns best-effort around each agent invocation.
	Recorder *chat.Recorder

	logger          *slog.Logger
	tracingShutdown func(context.Context) error
}

// Close releases all resources: flushes and stops the tracer provider,
// then closes the database pool. Safe to call on a partially initialized
// App; nil members are skipped.
func (a *App) Close() error {
	logger := a.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("shutting down application")

	var err error
	if a.tracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := a.tracingShutdown(ctx); serr != nil {
			err = fmt.Errorf("shutting down tracer provider: %w", serr)
		}
	}

	if a.Pool != nil {
		a.Pool.Close()
		logger.Debug("database pool closed")
	}

	return err
}
