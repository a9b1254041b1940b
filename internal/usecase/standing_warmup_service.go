package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fulbito-league/internal/domain/league"
)

const defaultWarmupWorkers = 4

type WarmupResult struct {
	LeagueCount int
	WarmedCount int
	FailedCount int
	WorkerCount int
	Duration    time.Duration
}

// StandingWarmupService precomputes standings so the first read after a
// write does not pay for aggregation.
type StandingWarmupService struct {
	leagueRepo league.Repository
	standings  *StandingService
	workers    int
}

func NewStandingWarmupService(leagueRepo league.Repository, standings *StandingService, workers int) *StandingWarmupService {
	if workers < 1 {
		workers = defaultWarmupWorkers
	}
	return &StandingWarmupService{
		leagueRepo: leagueRepo,
		standings:  standings,
		workers:    workers,
	}
}

// Warm computes standings for every league. A failing league does not stop
// the others; all failures are combined into the returned error.
func (s *StandingWarmupService) Warm(ctx context.Context) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingWarmupService.Warm")
	defer span.End()

	start := time.Now()
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return WarmupResult{}, crerr.Wrap(err, "list leagues")
	}

	result := WarmupResult{
		LeagueCount: len(leagues),
		WorkerCount: min(s.workers, max(len(leagues), 1)),
	}
	if len(leagues) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	workerPool, err := ants.NewPool(result.WorkerCount)
	if err != nil {
		return WarmupResult{}, crerr.Wrap(err, "create worker pool")
	}
	defer workerPool.Release()

	var (
		warmed  atomic.Int32
		failed  atomic.Int32
		mu      sync.Mutex
		combine error
		wg      sync.WaitGroup
	)
	for _, item := range leagues {
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				failed.Add(1)
				return
			}
			if _, err := s.standings.ForLeague(ctx, item); err != nil {
				failed.Add(1)
				mu.Lock()
				combine = crerr.CombineErrors(combine, crerr.Wrapf(err, "warm league %s", item.ID))
				mu.Unlock()
				return
			}
			warmed.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return WarmupResult{}, crerr.Wrap(submitErr, "submit warm-up task")
		}
	}
	wg.Wait()

	result.WarmedCount = int(warmed.Load())
	result.FailedCount = int(failed.Load())
	result.Duration = time.Since(start)
	if ctx.Err() != nil {
		return result, crerr.Wrap(ctx.Err(), "standings warm-up interrupted")
	}
	return result, combine
}
