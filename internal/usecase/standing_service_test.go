package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	leaguemock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/league"
	matchmock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func standingFixture() (league.League, []player.Player, []match.Match) {
	item := league.League{ID: "league-1", Slug: "lunes", PlayersPerTeam: 1, Scoring: league.DefaultScoringRules(), Version: 3}
	roster := []player.Player{
		{ID: "p-ana", LeagueID: item.ID, FirstName: "Ana", LastName: "Ruiz"},
		{ID: "p-bea", LeagueID: item.ID, FirstName: "Bea", LastName: "Soto"},
	}
	matches := []match.Match{{
		ID:         "m-1",
		LeagueID:   item.ID,
		Sequence:   1,
		PlayedAt:   time.Date(2025, time.March, 3, 20, 0, 0, 0, time.UTC),
		Team1:      []match.Entry{{PlayerID: "p-ana"}},
		Team2:      []match.Entry{{PlayerID: "p-bea"}},
		Team1Score: 2,
	}}
	return item, roster, matches
}

func TestStandingService_CachesPerVersion(t *testing.T) {
	t.Parallel()

	item, roster, matches := standingFixture()
	leagueRepo := leaguemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	leagueRepo.On("GetBySlug", mock.Anything, "lunes").Return(item, true, nil).Twice()
	playerRepo.On("ListByLeague", mock.Anything, "league-1").Return(roster, nil).Once()
	matchRepo.On("ListByLeague", mock.Anything, "league-1").Return(matches, nil).Once()

	svc := NewStandingService(leagueRepo, playerRepo, matchRepo, basecache.NewStore(time.Minute))

	first, err := svc.ListBySlug(context.Background(), "Lunes")
	require.NoError(t, err)
	second, err := svc.ListBySlug(context.Background(), "lunes")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "p-ana", first[0].PlayerID)
	require.Equal(t, 3, first[0].TotalPoints)

	// Mutating a returned slice must not leak into the cached copy.
	first[0].TotalPoints = 99
	third, err := svc.ForLeague(context.Background(), item)
	require.NoError(t, err)
	require.Equal(t, 3, third[0].TotalPoints)
}

func TestStandingService_NewVersionRecomputes(t *testing.T) {
	t.Parallel()

	item, roster, matches := standingFixture()
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	playerRepo.On("ListByLeague", mock.Anything, "league-1").Return(roster, nil).Twice()
	matchRepo.On("ListByLeague", mock.Anything, "league-1").Return(matches, nil).Twice()

	store := basecache.NewStore(time.Minute)
	svc := NewStandingService(leaguemock.NewRepository(t), playerRepo, matchRepo, store)

	_, err := svc.ForLeague(context.Background(), item)
	require.NoError(t, err)
	item.Version++
	_, err = svc.ForLeague(context.Background(), item)
	require.NoError(t, err)

	_, stale := store.Get(context.Background(), standingsKey(item.ID, item.Version-1))
	require.False(t, stale)
	_, current := store.Get(context.Background(), standingsKey(item.ID, item.Version))
	require.True(t, current)

	// Same version again is served from the cache; the mocks allow only two loads.
	_, err = svc.ForLeague(context.Background(), item)
	require.NoError(t, err)
}

func TestStandingService_UnknownParticipantIsIntegrityError(t *testing.T) {
	t.Parallel()

	item, roster, matches := standingFixture()
	matches[0].Team2 = []match.Entry{{PlayerID: "p-ghost"}}

	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	playerRepo.On("ListByLeague", mock.Anything, "league-1").Return(roster, nil).Once()
	matchRepo.On("ListByLeague", mock.Anything, "league-1").Return(matches, nil).Once()

	svc := NewStandingService(leaguemock.NewRepository(t), playerRepo, matchRepo, nil)
	_, err := svc.ForLeague(context.Background(), item)
	require.ErrorIs(t, err, ErrIntegrity)
}

func TestStandingService_ListBySlug_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.standings.ListBySlug(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.standings.ListBySlug(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}
