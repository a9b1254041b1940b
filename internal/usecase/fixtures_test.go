package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/user"
	"github.com/riskibarqy/fulbito-league/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
	"github.com/stretchr/testify/require"
)

var (
	owner    = user.Principal{UserID: "user-owner", Email: "owner@example.com"}
	stranger = user.Principal{UserID: "user-stranger", Email: "stranger@example.com"}
)

type testEnv struct {
	store     *memory.Store
	leagues   *memory.LeagueRepository
	players   *memory.PlayerRepository
	matches   *memory.MatchRepository
	standings *StandingService
	league    *LeagueService
	player    *PlayerService
	match     *MatchService
	matchup   *MatchupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	env := &testEnv{
		store:   store,
		leagues: memory.NewLeagueRepository(store),
		players: memory.NewPlayerRepository(store),
		matches: memory.NewMatchRepository(store),
	}
	ids := idgen.NewUUIDGenerator()
	env.standings = NewStandingService(env.leagues, env.players, env.matches, basecache.NewStore(time.Minute))
	env.league = NewLeagueService(env.leagues, env.players, env.matches, env.standings, ids)
	env.player = NewPlayerService(env.leagues, env.players, ids)
	env.match = NewMatchService(env.leagues, env.players, env.matches, ids)
	env.matchup = NewMatchupService(env.leagues, env.players, env.matches)
	return env
}

// createLeague makes a league owned by owner with the given roster.
func (e *testEnv) createLeague(t *testing.T, name string, playersPerTeam int, rules league.ScoringRules, names ...[2]string) league.League {
	t.Helper()

	players := make([]NewPlayerInput, 0, len(names))
	for _, n := range names {
		players = append(players, NewPlayerInput{FirstName: n[0], LastName: n[1]})
	}
	item, err := e.league.Create(context.Background(), owner, CreateLeagueInput{
		Name:           name,
		PlayersPerTeam: playersPerTeam,
		Scoring:        rules,
		Players:        players,
	})
	require.NoError(t, err)
	return item
}

// playerID looks a roster member up by first name.
func (e *testEnv) playerID(t *testing.T, leagueID, firstName string) string {
	t.Helper()

	roster, err := e.players.ListByLeague(context.Background(), leagueID)
	require.NoError(t, err)
	for _, p := range roster {
		if p.FirstName == firstName {
			return p.ID
		}
	}
	t.Fatalf("player %s not found in league %s", firstName, leagueID)
	return ""
}

func (e *testEnv) record(t *testing.T, leagueID string, day int, team1, team2 []RosterEntryInput, s1, s2 int) {
	t.Helper()

	_, err := e.match.Record(context.Background(), owner, RecordMatchInput{
		LeagueID:   leagueID,
		PlayedAt:   time.Date(2025, time.April, day, 20, 0, 0, 0, time.UTC),
		Team1:      team1,
		Team2:      team2,
		Team1Score: s1,
		Team2Score: s2,
	})
	require.NoError(t, err)
}

func existing(id string, goals int) RosterEntryInput {
	return RosterEntryInput{PlayerID: id, Goals: goals}
}
