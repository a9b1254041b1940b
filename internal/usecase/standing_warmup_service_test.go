package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	leaguemock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/league"
	matchmock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStandingWarmupService_WarmsEveryLeague(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, name := range []string{"Uno", "Dos", "Tres", "Cuatro", "Cinco"} {
		env.createLeague(t, name, 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"}, [2]string{"Bea", "Soto"})
	}

	result, err := NewStandingWarmupService(env.leagues, env.standings, 2).Warm(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.LeagueCount)
	require.Equal(t, 5, result.WarmedCount)
	require.Zero(t, result.FailedCount)
	require.Equal(t, 2, result.WorkerCount)
}

func TestStandingWarmupService_NoLeagues(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	result, err := NewStandingWarmupService(env.leagues, env.standings, 0).Warm(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.LeagueCount)
	require.Equal(t, 1, result.WorkerCount)
}

func TestStandingWarmupService_CombinesFailures(t *testing.T) {
	t.Parallel()

	leagues := []league.League{
		{ID: "ok", Scoring: league.DefaultScoringRules(), Version: 1},
		{ID: "broken", Scoring: league.DefaultScoringRules(), Version: 1},
	}
	leagueRepo := leaguemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	leagueRepo.On("List", mock.Anything).Return(leagues, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "ok").Return(nil, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "broken").Return(nil, errors.New("db down")).Once()
	matchRepo.On("ListByLeague", mock.Anything, "ok").Return([]match.Match{}, nil).Once()

	standings := NewStandingService(leagueRepo, playerRepo, matchRepo, basecache.NewStore(time.Minute))
	result, err := NewStandingWarmupService(leagueRepo, standings, 4).Warm(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken")
	require.Equal(t, 1, result.WarmedCount)
	require.Equal(t, 1, result.FailedCount)
	require.Equal(t, 2, result.WorkerCount)
}

func TestStandingWarmupService_ListFailure(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	leagueRepo.On("List", mock.Anything).Return(nil, errors.New("timeout")).Once()

	_, err := NewStandingWarmupService(leagueRepo, NewStandingService(leagueRepo, nil, nil, nil), 1).Warm(context.Background())
	require.ErrorContains(t, err, "list leagues")
}

func TestStandingWarmupService_WarmedStandingsServeLaterReads(t *testing.T) {
	t.Parallel()

	item := league.League{ID: "warm", Scoring: league.DefaultScoringRules(), Version: 3}
	leagueRepo := leaguemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	leagueRepo.On("List", mock.Anything).Return([]league.League{item}, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "warm").Return(nil, nil).Once()
	matchRepo.On("ListByLeague", mock.Anything, "warm").Return([]match.Match{}, nil).Once()

	standings := NewStandingService(leagueRepo, playerRepo, matchRepo, basecache.NewStore(time.Minute))
	result, err := NewStandingWarmupService(leagueRepo, standings, 1).Warm(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.WarmedCount)

	// The repositories may only be hit once; this read must come from the cache.
	_, err = standings.ForLeague(context.Background(), item)
	require.NoError(t, err)
}
