package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parley0/parley/db"
	"github.com/parley0/parley/internal/chat"
	"github.com/parley0/parley/internal/config"
	"github.com/parley0/parley/internal/gemini"
	"github.com/parley0/parley/internal/history"
	"github.com/parley0/parley/internal/observability"
)

// Setup creates and initializes the application. On success the returned
// App owns every resource it holds; call Close to release them.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, retErr error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, logger: logger}

	// On error, release everything already initialized.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	shutdown, err := observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Environment: cfg.Tracing.Environment,
		ServiceName: cfg.Tracing.ServiceName,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	a.tracingShutdown = shutdown

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Pool = pool

	a.Store = history.New(pool, logger.With("component", "history"))

	model, err := newModel(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	agent, err := chat.New(chat.Config{
		Store:            a.Store,
		Model:            model,
		Creds:            chat.Credentials{APIKey: cfg.GeminiAPIKey},
		Logger:           logger.With("component", "chat"),
		MaxHistoryTokens: cfg.MaxHistoryTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat agent: %w", err)
	}
	a.Agent = agent
	a.Recorder = chat.NewRecorder(a.Store, logger.With("component", "recorder"))

	return a, nil
}

// newPool runs migrations and opens the PostgreSQL connection pool.
// Pool limits are sized for a single relay instance.
func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// newModel creates the Gemini client, or returns a nil model when no
// usable credential is configured. A nil model selects demo mode; the
// agent logs the operator hint itself.
func newModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (chat.ModelClient, error) {
	if !(chat.Credentials{APIKey: cfg.GeminiAPIKey}).Configured() {
		return nil, nil
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.ModelName,
		Logger: logger.With("component", "gemini"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client, nil
}
