package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

const (
	DemoLeagueID   = "demo-league"
	DemoLeagueSlug = "liga-de-los-jueves"
)

// SeedDemo loads a small 2v2 league so a dev instance has data to render.
func SeedDemo(ctx context.Context, store *Store, ownerUserID string) error {
	now := time.Now().UTC()
	l := league.League{
		ID:             DemoLeagueID,
		OwnerUserID:    ownerUserID,
		Name:           "Liga de los Jueves",
		Slug:           DemoLeagueSlug,
		PlayersPerTeam: 2,
		Scoring: league.ScoringRules{
			PointsPerWin:           3,
			PointsPerDraw:          1,
			PointsPerMatchPlayed:   1,
			IsGoalsEnabled:         true,
			PointsPerGoal:          1,
			IsWinStreakEnabled:     true,
			PointsPerWinInStreak:   1,
			MinWinStreakToActivate: 3,
			IsMvpEnabled:           true,
			PointsPerMvp:           2,
		}.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	names := [][2]string{{"Martín", "Gómez"}, {"Lucía", "Fernández"}, {"Diego", "Sosa"}, {"Valentina", "Ríos"}}
	roster := make([]player.Player, 0, len(names))
	for i, n := range names {
		roster = append(roster, player.Player{
			ID:        fmt.Sprintf("demo-player-%d", i+1),
			LeagueID:  l.ID,
			FirstName: n[0],
			LastName:  n[1],
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := NewLeagueRepository(store).Create(ctx, l, roster); err != nil {
		return fmt.Errorf("seed demo league: %w", err)
	}

	matches := NewMatchRepository(store)
	results := [][2]int{{3, 1}, {2, 2}, {0, 1}}
	for i, score := range results {
		m := match.Match{
			ID:         fmt.Sprintf("demo-match-%d", i+1),
			LeagueID:   l.ID,
			PlayedAt:   now.AddDate(0, 0, -7*(len(results)-i)),
			Team1:      []match.Entry{{PlayerID: roster[0].ID, Goals: score[0]}, {PlayerID: roster[1].ID}},
			Team2:      []match.Entry{{PlayerID: roster[2].ID, Goals: score[1]}, {PlayerID: roster[3].ID}},
			Team1Score: score[0],
			Team2Score: score[1],
			CreatedAt:  now,
		}
		if _, err := matches.Record(ctx, m, nil); err != nil {
			return fmt.Errorf("seed demo match %d: %w", i+1, err)
		}
	}

	return nil
}
