package postgres

import (
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
)

type scoringColumns struct {
	PointsPerWin            int  `db:"points_per_win"`
	PointsPerDraw           int  `db:"points_per_draw"`
	PointsPerLoss           int  `db:"points_per_loss"`
	PointsPerMatchPlayed    int  `db:"points_per_match_played"`
	IsGoalsEnabled          bool `db:"is_goals_enabled"`
	PointsPerGoal           int  `db:"points_per_goal"`
	IsWinStreakEnabled      bool `db:"is_win_streak_enabled"`
	PointsPerWinInStreak    int  `db:"points_per_win_in_streak"`
	MinWinStreakToActivate  int  `db:"min_win_streak_to_activate"`
	IsLossStreakEnabled     bool `db:"is_loss_streak_enabled"`
	PointsPerLossInStreak   int  `db:"points_per_loss_in_streak"`
	MinLossStreakToActivate int  `db:"min_loss_streak_to_activate"`
	IsMvpEnabled            bool `db:"is_mvp_enabled"`
	PointsPerMvp            int  `db:"points_per_mvp"`
}

type leagueTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	OwnerUserID    string    `db:"owner_user_id"`
	Name           string    `db:"name"`
	Slug           string    `db:"slug"`
	PlayersPerTeam int       `db:"players_per_team"`
	Version        int64     `db:"version"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	scoringColumns
}

type leagueInsertModel struct {
	PublicID                string    `db:"public_id"`
	OwnerUserID             string    `db:"owner_user_id"`
	Name                    string    `db:"name"`
	Slug                    string    `db:"slug"`
	PlayersPerTeam          int       `db:"players_per_team"`
	PointsPerWin            int       `db:"points_per_win"`
	PointsPerDraw           int       `db:"points_per_draw"`
	PointsPerLoss           int       `db:"points_per_loss"`
	PointsPerMatchPlayed    int       `db:"points_per_match_played"`
	IsGoalsEnabled          bool      `db:"is_goals_enabled"`
	PointsPerGoal           int       `db:"points_per_goal"`
	IsWinStreakEnabled      bool      `db:"is_win_streak_enabled"`
	PointsPerWinInStreak    int       `db:"points_per_win_in_streak"`
	MinWinStreakToActivate  int       `db:"min_win_streak_to_activate"`
	IsLossStreakEnabled     bool      `db:"is_loss_streak_enabled"`
	PointsPerLossInStreak   int       `db:"points_per_loss_in_streak"`
	MinLossStreakToActivate int       `db:"min_loss_streak_to_activate"`
	IsMvpEnabled            bool      `db:"is_mvp_enabled"`
	PointsPerMvp            int       `db:"points_per_mvp"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

func leagueInsertFromDomain(item league.League) leagueInsertModel {
	r := item.Scoring
	return leagueInsertModel{
		PublicID:                item.ID,
		OwnerUserID:             item.OwnerUserID,
		Name:                    item.Name,
		Slug:                    item.Slug,
		PlayersPerTeam:          item.PlayersPerTeam,
		PointsPerWin:            r.PointsPerWin,
		PointsPerDraw:           r.PointsPerDraw,
		PointsPerLoss:           r.PointsPerLoss,
		PointsPerMatchPlayed:    r.PointsPerMatchPlayed,
		IsGoalsEnabled:          r.IsGoalsEnabled,
		PointsPerGoal:           r.PointsPerGoal,
		IsWinStreakEnabled:      r.IsWinStreakEnabled,
		PointsPerWinInStreak:    r.PointsPerWinInStreak,
		MinWinStreakToActivate:  r.MinWinStreakToActivate,
		IsLossStreakEnabled:     r.IsLossStreakEnabled,
		PointsPerLossInStreak:   r.PointsPerLossInStreak,
		MinLossStreakToActivate: r.MinLossStreakToActivate,
		IsMvpEnabled:            r.IsMvpEnabled,
		PointsPerMvp:            r.PointsPerMvp,
		CreatedAt:               item.CreatedAt,
		UpdatedAt:               item.UpdatedAt,
	}
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:             row.PublicID,
		OwnerUserID:    row.OwnerUserID,
		Name:           row.Name,
		Slug:           row.Slug,
		PlayersPerTeam: row.PlayersPerTeam,
		Scoring: league.ScoringRules{
			PointsPerWin:            row.PointsPerWin,
			PointsPerDraw:           row.PointsPerDraw,
			PointsPerLoss:           row.PointsPerLoss,
			PointsPerMatchPlayed:    row.PointsPerMatchPlayed,
			IsGoalsEnabled:          row.IsGoalsEnabled,
			PointsPerGoal:           row.PointsPerGoal,
			IsWinStreakEnabled:      row.IsWinStreakEnabled,
			PointsPerWinInStreak:    row.PointsPerWinInStreak,
			MinWinStreakToActivate:  row.MinWinStreakToActivate,
			IsLossStreakEnabled:     row.IsLossStreakEnabled,
			PointsPerLossInStreak:   row.PointsPerLossInStreak,
			MinLossStreakToActivate: row.MinLossStreakToActivate,
			IsMvpEnabled:            row.IsMvpEnabled,
			PointsPerMvp:            row.PointsPerMvp,
		},
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
