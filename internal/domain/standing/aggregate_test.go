package standing

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, time.March, 1, 20, 0, 0, 0, time.UTC)

func onDay(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func oneVsOne(id string, seq int64, playedAt time.Time, p1 string, s1 int, p2 string, s2 int) match.Match {
	return match.Match{
		ID:         id,
		LeagueID:   "lg-1",
		Sequence:   seq,
		PlayedAt:   playedAt,
		Team1:      []match.Entry{{PlayerID: p1, Goals: s1}},
		Team2:      []match.Entry{{PlayerID: p2, Goals: s2}},
		Team1Score: s1,
		Team2Score: s2,
	}
}

func roster(names ...string) []player.Player {
	out := make([]player.Player, 0, len(names))
	for _, name := range names {
		out = append(out, player.Player{ID: name, LeagueID: "lg-1", FirstName: name, LastName: "Test"})
	}
	return out
}

func byID(items []Standing) map[string]Standing {
	out := make(map[string]Standing, len(items))
	for _, item := range items {
		out[item.PlayerID] = item
	}
	return out
}

func TestAggregate_BasicStandings(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{PointsPerWin: 3, PointsPerDraw: 1, PointsPerLoss: 0, PointsPerMatchPlayed: 1}.Normalize()
	matches := []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 2, "y", 0),
		oneVsOne("m2", 2, onDay(2), "x", 1, "y", 1),
	}

	got, err := Aggregate(rules, roster("x", "y"), matches)
	require.NoError(t, err)
	require.Len(t, got, 2)

	x := got[0]
	require.Equal(t, "x", x.PlayerID)
	require.Equal(t, 1, x.Position)
	require.Equal(t, 2, x.MatchesPlayed)
	require.Equal(t, 1, x.MatchesWon)
	require.Equal(t, 1, x.MatchesDrawn)
	require.Equal(t, 0, x.MatchesLost)
	require.Equal(t, 6, x.TotalPoints)

	y := got[1]
	require.Equal(t, "y", y.PlayerID)
	require.Equal(t, 2, y.Position)
	require.Equal(t, 0, y.MatchesWon)
	require.Equal(t, 1, y.MatchesDrawn)
	require.Equal(t, 1, y.MatchesLost)
	require.Equal(t, 3, y.TotalPoints)
	require.InDelta(t, 100.0, y.AttendanceRate, 1e-9)
	require.InDelta(t, 50.0, y.DrawRate, 1e-9)
	require.InDelta(t, 50.0, y.LossRate, 1e-9)
	require.InDelta(t, 0.0, y.WinRate, 1e-9)
}

func TestAggregate_PointsConservation(t *testing.T) {
	t.Parallel()

	rules := league.DefaultScoringRules()
	tests := []struct {
		name           string
		playersPerTeam int
		team1Score     int
		team2Score     int
		want           int
	}{
		{name: "decisive 1v1", playersPerTeam: 1, team1Score: 2, team2Score: 1, want: 3},
		{name: "draw 1v1", playersPerTeam: 1, team1Score: 0, team2Score: 0, want: 2},
		{name: "decisive 5v5", playersPerTeam: 5, team1Score: 1, team2Score: 4, want: 15},
		{name: "draw 5v5", playersPerTeam: 5, team1Score: 2, team2Score: 2, want: 10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var players []player.Player
			m := match.Match{ID: "m1", LeagueID: "lg-1", PlayedAt: onDay(1), Team1Score: tc.team1Score, Team2Score: tc.team2Score}
			for i := 0; i < tc.playersPerTeam; i++ {
				a := player.Player{ID: "a" + string(rune('0'+i)), FirstName: "A", LastName: string(rune('a' + i))}
				b := player.Player{ID: "b" + string(rune('0'+i)), FirstName: "B", LastName: string(rune('a' + i))}
				players = append(players, a, b)
				m.Team1 = append(m.Team1, match.Entry{PlayerID: a.ID})
				m.Team2 = append(m.Team2, match.Entry{PlayerID: b.ID})
			}

			got, err := Aggregate(rules, players, []match.Match{m})
			require.NoError(t, err)

			total := 0
			for _, s := range got {
				total += s.TotalPoints
			}
			require.Equal(t, tc.want, total)
		})
	}
}

func TestAggregate_WinStreakBonus(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{
		PointsPerWin:           3,
		IsWinStreakEnabled:     true,
		PointsPerWinInStreak:   2,
		MinWinStreakToActivate: 2,
	}.Normalize()
	matches := []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 1, "y", 0),
		oneVsOne("m2", 2, onDay(2), "x", 1, "y", 0),
		oneVsOne("m3", 3, onDay(3), "x", 1, "y", 0),
	}

	got, err := Aggregate(rules, roster("x", "y"), matches)
	require.NoError(t, err)

	x := byID(got)["x"]
	require.Equal(t, 9+4, x.TotalPoints)
	require.Equal(t, 3, x.CurrentWinStreak)
	require.Equal(t, 0, x.CurrentLossStreak)

	y := byID(got)["y"]
	require.Equal(t, 0, y.CurrentWinStreak)
	require.Equal(t, 3, y.CurrentLossStreak)
}

func TestAggregate_LossStreakPenaltyAndDrawReset(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{
		PointsPerWin:            3,
		PointsPerLoss:           -1,
		IsLossStreakEnabled:     true,
		PointsPerLossInStreak:   -2,
		MinLossStreakToActivate: 2,
	}.Normalize()
	matches := []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 0, "y", 1),
		oneVsOne("m2", 2, onDay(2), "x", 0, "y", 1),
		oneVsOne("m3", 3, onDay(3), "x", 2, "y", 2),
		oneVsOne("m4", 4, onDay(4), "x", 0, "y", 1),
	}

	got, err := Aggregate(rules, roster("x", "y"), matches)
	require.NoError(t, err)

	x := byID(got)["x"]
	// three losses at -1, one streak penalty on the second loss; the draw resets.
	require.Equal(t, -3-2, x.TotalPoints)
	require.Equal(t, 1, x.CurrentLossStreak)
	require.Equal(t, 0, x.CurrentWinStreak)
}

func TestAggregate_ProcessesChronologicallyRegardlessOfInputOrder(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{
		PointsPerWin:           3,
		IsWinStreakEnabled:     true,
		PointsPerWinInStreak:   5,
		MinWinStreakToActivate: 2,
	}.Normalize()
	// Same timestamp for m2 and m3: sequence decides, so the loss comes last.
	matches := []match.Match{
		oneVsOne("m3", 3, onDay(2), "x", 0, "y", 1),
		oneVsOne("m1", 1, onDay(1), "x", 1, "y", 0),
		oneVsOne("m2", 2, onDay(2), "x", 1, "y", 0),
	}

	got, err := Aggregate(rules, roster("x", "y"), matches)
	require.NoError(t, err)

	x := byID(got)["x"]
	require.Equal(t, 6+5, x.TotalPoints)
	require.Equal(t, 0, x.CurrentWinStreak)
	require.Equal(t, 1, x.CurrentLossStreak)
}

func TestAggregate_GoalsAndMVP(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{
		PointsPerWin:   3,
		IsGoalsEnabled: true,
		PointsPerGoal:  1,
		IsMvpEnabled:   true,
		PointsPerMvp:   2,
	}.Normalize()
	m := oneVsOne("m1", 1, onDay(1), "x", 2, "y", 0)
	// Team score disagrees with individual goals; both are used as recorded.
	m.Team1Score = 3
	m.MVPPlayerID = "x"

	got, err := Aggregate(rules, roster("x", "y"), []match.Match{m})
	require.NoError(t, err)

	x := byID(got)["x"]
	require.Equal(t, 2, x.GoalsFor)
	require.Equal(t, 3+2+2, x.TotalPoints)
	require.Equal(t, 1, x.MatchesWon)
}

func TestAggregate_GoalsIgnoredWhenDisabled(t *testing.T) {
	t.Parallel()

	m := oneVsOne("m1", 1, onDay(1), "x", 4, "y", 0)
	m.MVPPlayerID = "x"

	got, err := Aggregate(league.DefaultScoringRules(), roster("x", "y"), []match.Match{m})
	require.NoError(t, err)

	x := byID(got)["x"]
	require.Equal(t, 0, x.GoalsFor)
	require.Equal(t, 3, x.TotalPoints)
}

func TestAggregate_TieBreaks(t *testing.T) {
	t.Parallel()

	rules := league.ScoringRules{PointsPerWin: 2, PointsPerDraw: 1}.Normalize()
	players := []player.Player{
		{ID: "p-zed", FirstName: "zed", LastName: "Alpha"},
		{ID: "p-ana", FirstName: "Ana", LastName: "Beta"},
		{ID: "p-bob", FirstName: "Bob", LastName: "Gamma"},
		{ID: "p-cal", FirstName: "Cal", LastName: "Delta"},
	}
	matches := []match.Match{
		// bob: one win (2 pts). cal: loss.
		oneVsOne("m1", 1, onDay(1), "p-bob", 1, "p-cal", 0),
		// ana and zed: two draws each (2 pts, 0 wins).
		oneVsOne("m2", 2, onDay(2), "p-ana", 0, "p-zed", 0),
		oneVsOne("m3", 3, onDay(3), "p-zed", 1, "p-ana", 1),
	}

	got, err := Aggregate(rules, players, matches)
	require.NoError(t, err)
	require.Len(t, got, 4)

	order := []string{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID, got[3].PlayerID}
	require.Equal(t, []string{"p-bob", "p-ana", "p-zed", "p-cal"}, order)
	for i, s := range got {
		require.Equal(t, i+1, s.Position)
	}
}

func TestAggregate_OnlyPlayersWithMatchesAppear(t *testing.T) {
	t.Parallel()

	got, err := Aggregate(league.DefaultScoringRules(), roster("x", "y", "bench"), []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 1, "y", 0),
		oneVsOne("m2", 2, onDay(2), "x", 1, "y", 0),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	_, ok := byID(got)["bench"]
	require.False(t, ok)
}

func TestAggregate_AttendanceUsesLeagueMatchCount(t *testing.T) {
	t.Parallel()

	got, err := Aggregate(league.DefaultScoringRules(), roster("x", "y", "z"), []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 1, "y", 0),
		oneVsOne("m2", 2, onDay(2), "x", 1, "z", 0),
		oneVsOne("m3", 3, onDay(3), "y", 1, "z", 0),
		oneVsOne("m4", 4, onDay(4), "x", 1, "y", 0),
	})
	require.NoError(t, err)

	rows := byID(got)
	require.InDelta(t, 75.0, rows["x"].AttendanceRate, 1e-9)
	require.InDelta(t, 75.0, rows["y"].AttendanceRate, 1e-9)
	require.InDelta(t, 50.0, rows["z"].AttendanceRate, 1e-9)
	require.InDelta(t, 100.0, rows["x"].WinRate, 1e-9)
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 1, "y", 0),
		oneVsOne("m2", 2, onDay(2), "y", 3, "x", 3),
	}
	first, err := Aggregate(league.DefaultScoringRules(), roster("x", "y"), matches)
	require.NoError(t, err)
	second, err := Aggregate(league.DefaultScoringRules(), roster("x", "y"), matches)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAggregate_UnknownPlayerIsIntegrityError(t *testing.T) {
	t.Parallel()

	_, err := Aggregate(league.DefaultScoringRules(), roster("x"), []match.Match{
		oneVsOne("m1", 1, onDay(1), "x", 1, "ghost", 0),
	})
	if !errors.Is(err, match.ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestAggregate_NoMatches(t *testing.T) {
	t.Parallel()

	got, err := Aggregate(league.DefaultScoringRules(), roster("x"), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
