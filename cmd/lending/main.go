package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/alert"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/allowance"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/api"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/chain"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/config"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/metrics"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/passport"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store/postgres"
	redispkg "github.com/ShivamAgarwal-code/Talent-Cred/internal/store/redis"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/tracing"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	migrationsDir       = "internal/store/postgres/migrations"
	dbPoolStatsInterval = 15 * time.Second
	shutdownGrace       = 10 * time.Second
)

// confirmerFunc adapts the lending service's ConfirmDecision to the watcher's
// error-only signature.
type confirmerFunc func(ctx context.Context, id uuid.UUID, confirmed bool) error

func (f confirmerFunc) ConfirmDecision(ctx context.Context, id uuid.UUID, confirmed bool) error {
	return f(ctx, id, confirmed)
}

type dbStatsProvider interface {
	Stats() sql.DBStats
}

func collectDBPoolStats(db dbStatsProvider) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("db pool stats collection panicked: %v", r)
		}
	}()
	if db == nil {
		return fmt.Errorf("db stats provider is nil")
	}

	stats := db.Stats()
	metrics.DBPoolOpen.Set(float64(stats.OpenConnections))
	metrics.DBPoolInUse.Set(float64(stats.InUse))
	metrics.DBPoolIdle.Set(float64(stats.Idle))
	metrics.DBPoolWaitCount.Set(float64(stats.WaitCount))
	metrics.DBPoolWaitDuration.Set(stats.WaitDuration.Seconds())
	return nil
}

func startDBPoolStatsPump(ctx context.Context, db dbStatsProvider, logger *slog.Logger) {
	if db == nil {
		return
	}

	ticker := time.NewTicker(dbPoolStatsInterval)
	go func() {
		defer ticker.Stop()

		if err := collectDBPoolStats(db); err != nil {
			logger.Warn("failed to collect initial db pool stats", "error", err)
		}

		for {
			select {
			case <-ctx.Done():
				logger.Info("db pool stats sampler stopped", "cause", "context_done")
				return
			case <-ticker.C:
				if err := collectDBPoolStats(db); err != nil {
					logger.Warn("failed to collect db pool stats", "error", err)
				}
			}
		}
	}()
}

func loadAllowanceTable(path string, logger *slog.Logger) (*allowance.Table, error) {
	if path == "" {
		return allowance.DefaultTable(), nil
	}
	table, err := allowance.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("load allowance tiers from %s: %w", path, err)
	}
	logger.Info("allowance tiers loaded", "path", path, "tiers", len(table.Tiers()))
	return table, nil
}

func buildAlerter(cfg config.AlertConfig, logger *slog.Logger) alert.Alerter {
	var alerters []alert.Alerter
	if cfg.SlackWebhookURL != "" {
		alerters = append(alerters, alert.NewSlackAlerter(cfg.SlackWebhookURL))
	}
	if cfg.WebhookURL != "" {
		alerters = append(alerters, alert.NewWebhookAlerter(cfg.WebhookURL))
	}
	if len(alerters) == 0 {
		return &alert.NoopAlerter{}
	}
	return alert.NewMultiAlerter(cfg.Cooldown, logger, alerters...)
}

func runAPIServer(ctx context.Context, port int, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting lending service",
		"port", cfg.Server.Port,
		"two_phase_approval", cfg.Lending.TwoPhaseApproval,
		"chain_rpc", cfg.Chain.RPCURL,
		"redis_events", cfg.Redis.URL != "",
		"passport_api", cfg.Passport.BaseURL != "" || cfg.Passport.APIKey != "",
	)

	// Initialize OpenTelemetry tracing
	tracingEndpoint := ""
	if cfg.Tracing.Enabled {
		tracingEndpoint = cfg.Tracing.OTLPEndpoint
	}
	shutdownTracing, err := tracing.Init(context.Background(), "lending", tracingEndpoint, cfg.Tracing.SampleRate)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()

	// Connect to PostgreSQL
	db, err := postgres.New(postgres.Config{
		URL:                cfg.DB.URL,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetime:    cfg.DB.ConnMaxLifetime,
		StatementTimeoutMS: cfg.DB.StatementTimeoutMS,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	if err := db.RunMigrations(migrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	allowances, err := loadAllowanceTable(cfg.Lending.AllowanceTiersPath, logger)
	if err != nil {
		logger.Error("failed to load allowance table", "error", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := postgres.NewPassportProfileRepo(db)
	creditLineRepo := postgres.NewCreditLineRepo(db)
	applicationRepo := postgres.NewLoanApplicationRepo(db)
	loanRepo := postgres.NewLoanRepo(db)

	// Optional redis event stream
	var svcOpts []service.Option
	var eventStream *redispkg.Stream
	if cfg.Redis.URL != "" {
		eventStream, err = redispkg.NewStream(cfg.Redis.URL, cfg.Redis.EventStream, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer eventStream.Close()
		svcOpts = append(svcOpts, service.WithEventPublisher(eventStream))
	}
	svcOpts = append(svcOpts, service.WithTwoPhaseApproval(cfg.Lending.TwoPhaseApproval))

	lending := service.New(db.DB, profileRepo, creditLineRepo, applicationRepo, loanRepo, allowances, logger, svcOpts...)

	// Optional passport API client
	var passportClient *passport.Client
	if cfg.Passport.APIKey != "" || cfg.Passport.BaseURL != "" {
		var passportOpts []passport.Option
		if cfg.Passport.BaseURL != "" {
			passportOpts = append(passportOpts, passport.WithBaseURL(cfg.Passport.BaseURL))
		}
		if eventStream != nil {
			passportOpts = append(passportOpts, passport.WithCache(eventStream.Client(), cfg.Passport.CacheTTL))
		}
		passportClient = passport.NewClient(cfg.Passport.APIKey, logger, passportOpts...)
	}

	// HTTP API
	apiOpts := []api.ServerOption{api.WithHealthChecker(db.DB)}
	if passportClient != nil {
		apiOpts = append(apiOpts, api.WithPassportFetcher(passportClient))
	}
	var limiter *api.RateLimitMiddleware
	if cfg.Server.RateLimitEnabled {
		limiter = api.NewRateLimitMiddleware(logger)
		defer limiter.Stop()
		apiOpts = append(apiOpts, api.WithRateLimiter(limiter))
	}
	server := api.NewServer(lending, logger, apiOpts...)

	// Context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runAPIServer(gCtx, cfg.Server.Port, server.Handler(), logger)
	})

	// Receipt watcher drives ONCHAIN_PENDING applications when two-phase
	// approval is on.
	if cfg.Lending.TwoPhaseApproval {
		alerter := buildAlerter(cfg.Alert, logger)
		receiptClient := chain.NewClient(cfg.Chain.RPCURL, logger)
		confirmer := confirmerFunc(func(ctx context.Context, id uuid.UUID, confirmed bool) error {
			_, err := lending.ConfirmDecision(ctx, id, confirmed)
			return err
		})
		watcher := chain.NewWatcher(chain.WatcherConfig{
			PollInterval:   cfg.Chain.PollInterval,
			DecisionExpiry: cfg.Chain.DecisionExpiry,
		}, receiptClient, applicationRepo, confirmer, alerter, logger)

		g.Go(func() error {
			return watcher.Run(gCtx)
		})
	}

	startDBPoolStatsPump(gCtx, db.DB, logger)

	// Signal handler
	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("lending service exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("lending service shut down gracefully")
}
