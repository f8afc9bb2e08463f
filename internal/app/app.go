package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/datafoot/standings-engine/internal/config"
	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
	"github.com/datafoot/standings-engine/internal/infrastructure/notify"
	"github.com/datafoot/standings-engine/internal/infrastructure/repository/memory"
	"github.com/datafoot/standings-engine/internal/infrastructure/repository/postgres"
	"github.com/datafoot/standings-engine/internal/infrastructure/resultsfeed"
	"github.com/datafoot/standings-engine/internal/interfaces/httpapi"
	"github.com/datafoot/standings-engine/internal/platform/cache"
	"github.com/datafoot/standings-engine/internal/platform/logging"
	"github.com/datafoot/standings-engine/internal/platform/resilience"
	"github.com/datafoot/standings-engine/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes whatever the wiring opened (today: the database
// handle) and is safe to call after server shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		competitionRepo competition.Repository
		matchRepo       match.Repository
		penaltyRepo     penalty.Repository
	)
	cleanup := func(context.Context) error { return nil }

	if cfg.DBEnabled {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DBBootstrapSeed {
			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		competitionRepo = postgres.NewCompetitionRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		penaltyRepo = postgres.NewPenaltyRepository(db)
		cleanup = func(context.Context) error { return db.Close() }
		logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))
	} else {
		competitionRepo = memory.NewCompetitionRepository(memory.SeedCompetitions())
		matchRepo = memory.NewMatchRepository(memory.SeedMatches())
		penaltyRepo = memory.NewPenaltyRepository(memory.SeedPenalties())
		logger.Info("using in-memory repositories with seed data")
	}

	var snapshots *cache.Store
	if cfg.CacheEnabled {
		snapshots = cache.NewStore(cfg.CacheTTL)
	}

	standingsService := usecase.NewStandingsService(competitionRepo, matchRepo, penaltyRepo, snapshots)
	analysisService := usecase.NewAnalysisService(standingsService, matchRepo, competition.DefaultSpecialRules())

	var provider usecase.ResultsProvider
	if cfg.ResultsFeedEnabled {
		provider = resultsfeed.NewClient(resultsfeed.ClientConfig{
			BaseURL:    cfg.ResultsFeedBaseURL,
			Token:      cfg.ResultsFeedToken,
			Timeout:    cfg.ResultsFeedTimeout,
			MaxRetries: cfg.ResultsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ResultsFeedCircuitEnabled,
				FailureThreshold: cfg.ResultsFeedCircuitFailureCount,
				OpenTimeout:      cfg.ResultsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultsFeedCircuitHalfOpenMaxReq,
			},
		})
	}

	var notifier usecase.RefreshNotifier
	if cfg.WebhookEnabled {
		notifier = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			URL:     cfg.WebhookURL,
			Token:   cfg.WebhookToken,
			Timeout: cfg.WebhookTimeout,
			Retries: cfg.WebhookRetries,
			Logger:  logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		})
	}

	refreshService := usecase.NewRefreshService(standingsService, matchRepo, penaltyRepo, provider, notifier, cfg.RefreshMaxWorkers)

	handler := httpapi.NewHandler(standingsService, analysisService, refreshService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
