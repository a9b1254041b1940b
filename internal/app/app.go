package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fulbito-league/internal/config"
	"github.com/riskibarqy/fulbito-league/internal/infrastructure/account/identity"
	"github.com/riskibarqy/fulbito-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
	"github.com/riskibarqy/fulbito-league/internal/platform/logging"
	"github.com/riskibarqy/fulbito-league/internal/platform/resilience"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

// App is the wired service: the HTTP server plus everything that must be
// released when it stops.
type App struct {
	Server *http.Server

	warmup   *usecase.StandingWarmupService
	closers  []func(context.Context) error
	logger   *logging.Logger
	schedule *warmupScheduler
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var standingsCache *basecache.Store
	if cfg.CacheEnabled {
		standingsCache = basecache.NewStore(cfg.CacheTTL)
	}
	ids := idgen.NewUUIDGenerator()

	standingSvc := usecase.NewStandingService(repos.leagues, repos.players, repos.matches, standingsCache)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.players, repos.matches, standingSvc, ids)
	playerSvc := usecase.NewPlayerService(repos.leagues, repos.players, ids)
	matchSvc := usecase.NewMatchService(repos.leagues, repos.players, repos.matches, ids)
	matchupSvc := usecase.NewMatchupService(repos.leagues, repos.players, repos.matches)
	warmupSvc := usecase.NewStandingWarmupService(repos.leagues, standingSvc, cfg.StandingsWarmupWorkers)

	identityClient := identity.NewClient(identity.ClientConfig{
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		AdminKey:       cfg.IdentityAdminKey,
		Timeout:        cfg.IdentityTimeout,
		CacheTTL:       cfg.IdentityCacheTTL,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMax,
		},
	})

	handler := httpapi.NewHandler(leagueSvc, playerSvc, matchSvc, matchupSvc, standingSvc, warmupSvc, logger)
	router := httpapi.NewRouter(handler, identityClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		warmup:  warmupSvc,
		closers: repos.closers,
		logger:  logger,
	}, nil
}

// StartScheduler registers the periodic standings warm-up. It is a no-op
// when the schedule is disabled.
func (a *App) StartScheduler(ctx context.Context, cfg config.Config) error {
	if !cfg.StandingsWarmupEnabled {
		a.logger.Info("standings warm-up schedule disabled", "reason", "STANDINGS_WARMUP_ENABLED=false")
		return nil
	}

	schedule, err := startWarmupScheduler(ctx, a.warmup, cfg.StandingsWarmupInterval, a.logger)
	if err != nil {
		return err
	}
	a.schedule = schedule
	return nil
}

// Close stops the scheduler and releases storage. The HTTP server is shut
// down by the caller.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.schedule != nil {
		if err := a.schedule.Stop(); err != nil {
			firstErr = err
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
