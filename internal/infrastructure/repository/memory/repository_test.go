package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/stretchr/testify/require"
)

func newLeague(t *testing.T, store *Store) (league.League, []player.Player) {
	t.Helper()

	l := league.League{
		ID:             "lg-1",
		OwnerUserID:    "owner-1",
		Name:           "Jueves",
		Slug:           "jueves",
		PlayersPerTeam: 1,
		Scoring:        league.DefaultScoringRules(),
	}
	roster := []player.Player{
		{ID: "p1", LeagueID: l.ID, FirstName: "Ana", LastName: "Ruiz"},
		{ID: "p2", LeagueID: l.ID, FirstName: "Bea", LastName: "Soto"},
	}
	require.NoError(t, NewLeagueRepository(store).Create(context.Background(), l, roster))
	return l, roster
}

func oneVsOne(id, leagueID, p1, p2 string) match.Match {
	return match.Match{
		ID:         id,
		LeagueID:   leagueID,
		PlayedAt:   time.Date(2025, time.June, 5, 20, 0, 0, 0, time.UTC),
		Team1:      []match.Entry{{PlayerID: p1}},
		Team2:      []match.Entry{{PlayerID: p2}},
		Team1Score: 1,
	}
}

func TestLeagueRepository_CreateRejectsTakenSlugAndDuplicateRoster(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, _ := newLeague(t, store)
	repo := NewLeagueRepository(store)

	clash := l
	clash.ID = "lg-2"
	err := repo.Create(context.Background(), clash, nil)
	require.ErrorIs(t, err, league.ErrSlugTaken)

	other := l
	other.ID = "lg-3"
	other.Slug = "otra"
	err = repo.Create(context.Background(), other, []player.Player{
		{ID: "x1", LeagueID: other.ID, FirstName: "Ana", LastName: "Ruiz"},
		{ID: "x2", LeagueID: other.ID, FirstName: "ANA", LastName: "ruiz"},
	})
	require.ErrorIs(t, err, player.ErrDuplicateName)

	exists, err := repo.SlugExists(context.Background(), "otra")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestMatchRepository_RecordCreatesNewPlayersAtomically(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, roster := newLeague(t, store)
	matches := NewMatchRepository(store)
	players := NewPlayerRepository(store)
	ctx := context.Background()

	newcomer := player.Player{ID: "p3", LeagueID: l.ID, FirstName: "Cris", LastName: "Vega"}
	stored, err := matches.Record(ctx, oneVsOne("m1", l.ID, roster[0].ID, newcomer.ID), []player.Player{newcomer})
	require.NoError(t, err)
	require.Equal(t, int64(1), stored.Sequence)

	_, ok, err := players.GetByID(ctx, l.ID, newcomer.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// A duplicate newcomer name fails the whole write.
	dup := player.Player{ID: "p4", LeagueID: l.ID, FirstName: "cris", LastName: "VEGA"}
	_, err = matches.Record(ctx, oneVsOne("m2", l.ID, roster[1].ID, dup.ID), []player.Player{dup})
	require.ErrorIs(t, err, player.ErrDuplicateName)

	// An unknown reference also fails without leaving the newcomer behind.
	orphan := player.Player{ID: "p5", LeagueID: l.ID, FirstName: "Dani", LastName: "Luna"}
	_, err = matches.Record(ctx, oneVsOne("m3", l.ID, "ghost", orphan.ID), []player.Player{orphan})
	require.ErrorIs(t, err, match.ErrUnknownPlayer)
	_, ok, err = players.GetByID(ctx, l.ID, orphan.ID)
	require.NoError(t, err)
	require.False(t, ok)

	items, err := matches.ListByLeague(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestMatchRepository_RecordBumpsLeagueVersion(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, roster := newLeague(t, store)
	ctx := context.Background()

	_, err := NewMatchRepository(store).Record(ctx, oneVsOne("m1", l.ID, roster[0].ID, roster[1].ID), nil)
	require.NoError(t, err)

	got, ok, err := NewLeagueRepository(store).GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, l.Version+1, got.Version)
}

func TestMatchRepository_ConcurrentRecordsAreSerialized(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, roster := newLeague(t, store)
	repo := NewMatchRepository(store)

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := repo.Record(context.Background(), oneVsOne(fmt.Sprintf("m%d", i), l.ID, roster[0].ID, roster[1].ID), nil)
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	items, err := repo.ListByLeague(context.Background(), l.ID)
	require.NoError(t, err)
	require.Len(t, items, writers)
	seen := make(map[int64]struct{}, writers)
	for _, m := range items {
		seen[m.Sequence] = struct{}{}
	}
	require.Len(t, seen, writers)

	got, _, _ := NewLeagueRepository(store).GetByID(context.Background(), l.ID)
	require.Equal(t, int64(writers), got.Version)
}

func TestPlayerRepository_DeleteBlockedByHistory(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, roster := newLeague(t, store)
	players := NewPlayerRepository(store)
	ctx := context.Background()

	bench := player.Player{ID: "p9", LeagueID: l.ID, FirstName: "Eva", LastName: "Paz"}
	require.NoError(t, players.Create(ctx, bench))

	_, err := NewMatchRepository(store).Record(ctx, oneVsOne("m1", l.ID, roster[0].ID, roster[1].ID), nil)
	require.NoError(t, err)

	err = players.Delete(ctx, l.ID, roster[0].ID)
	if !errors.Is(err, player.ErrHasMatches) {
		t.Fatalf("expected ErrHasMatches, got %v", err)
	}
	require.NoError(t, players.Delete(ctx, l.ID, bench.ID))
}

func TestPlayerRepository_UpdateExcludesSelfFromDuplicateCheck(t *testing.T) {
	t.Parallel()

	store := NewStore()
	l, roster := newLeague(t, store)
	players := NewPlayerRepository(store)
	ctx := context.Background()

	self := roster[0]
	self.FirstName = "ANA"
	require.NoError(t, players.Update(ctx, self))

	other := roster[1]
	other.FirstName = "ana"
	other.LastName = "ruiz"
	require.ErrorIs(t, players.Update(ctx, other), player.ErrDuplicateName)

	list, err := players.ListByLeague(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	store := NewStore()
	require.NoError(t, SeedDemo(context.Background(), store, "owner-1"))

	l, ok, err := NewLeagueRepository(store).GetBySlug(context.Background(), DemoLeagueSlug)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(3), l.Version)
}
