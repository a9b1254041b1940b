package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/fulbito-league/internal/platform/logging"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const warmupJobName = "warm-standings"

var jobTracer = otel.Tracer("fulbito-league/internal/app")

type warmer interface {
	Warm(ctx context.Context) (usecase.WarmupResult, error)
}

type warmupScheduler struct {
	scheduler gocron.Scheduler
}

func startWarmupScheduler(ctx context.Context, job warmer, interval time.Duration, logger *logging.Logger) (*warmupScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { runWarmup(ctx, job, logger) }),
		gocron.WithName(warmupJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register %s job: %w", warmupJobName, err)
	}

	scheduler.Start()
	logger.Info("standings warm-up scheduled", "interval", interval.String())
	return &warmupScheduler{scheduler: scheduler}, nil
}

func (s *warmupScheduler) Stop() error {
	if s == nil || s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// runWarmup starts a root span per tick so the use-case spans have a parent.
func runWarmup(ctx context.Context, job warmer, logger *logging.Logger) {
	ctx, span := jobTracer.Start(ctx, "job."+warmupJobName, trace.WithNewRoot())
	defer span.End()

	result, err := job.Warm(ctx)
	if err != nil {
		logger.WarnContext(ctx, "scheduled standings warm-up failed",
			"leagues", result.LeagueCount,
			"failed", result.FailedCount,
			"error", err,
		)
		return
	}
	logger.InfoContext(ctx, "scheduled standings warm-up finished",
		"leagues", result.LeagueCount,
		"warmed", result.WarmedCount,
		"duration", result.Duration.String(),
	)
}
