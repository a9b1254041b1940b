package httpapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/matchup"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/riskibarqy/fulbito-league/internal/domain/standing"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

type scoringDTO struct {
	PointsPerWin            int  `json:"pointsPerWin"`
	PointsPerDraw           int  `json:"pointsPerDraw"`
	PointsPerLoss           int  `json:"pointsPerLoss"`
	PointsPerMatchPlayed    int  `json:"pointsPerMatchPlayed"`
	IsGoalsEnabled          bool `json:"isGoalsEnabled"`
	PointsPerGoal           int  `json:"pointsPerGoal"`
	IsWinStreakEnabled      bool `json:"isWinStreakEnabled"`
	PointsPerWinInStreak    int  `json:"pointsPerWinInStreak"`
	MinWinStreakToActivate  int  `json:"minWinStreakToActivate"`
	IsLossStreakEnabled     bool `json:"isLossStreakEnabled"`
	PointsPerLossInStreak   int  `json:"pointsPerLossInStreak"`
	MinLossStreakToActivate int  `json:"minLossStreakToActivate"`
	IsMvpEnabled            bool `json:"isMvpEnabled"`
	PointsPerMvp            int  `json:"pointsPerMvp"`
}

type newPlayerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

// createLeagueRequest carries the scoring fields flat next to the league
// fields.
type createLeagueRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	PlayersPerTeam int    `json:"playersPerTeam" validate:"required,min=1,max=11"`
	scoringDTO
	Players []newPlayerRequest `json:"players" validate:"omitempty,max=200,dive"`
}

type createLeagueResponse struct {
	LeagueID string `json:"leagueId"`
	Slug     string `json:"slug"`
}

type rosterEntryRequest struct {
	PlayerID  string            `json:"playerId"`
	NewPlayer *newPlayerRequest `json:"newPlayer"`
	Goals     int               `json:"goals" validate:"min=0"`
}

type recordMatchRequest struct {
	MatchDate    string               `json:"matchDate" validate:"required"`
	Team1Score   int                  `json:"team1Score" validate:"min=0"`
	Team2Score   int                  `json:"team2Score" validate:"min=0"`
	Team1Players []rosterEntryRequest `json:"team1Players" validate:"required,min=1,dive"`
	Team2Players []rosterEntryRequest `json:"team2Players" validate:"required,min=1,dive"`
	MvpPlayerID  string               `json:"mvpPlayerId"`
}

type recordMatchResponse struct {
	MatchID   string `json:"matchId"`
	MatchDate string `json:"matchDate"`
}

type setPlayerImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"omitempty,max=2048"`
}

type playerDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"leagueId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type standingDTO struct {
	Position          int     `json:"position"`
	PlayerID          string  `json:"playerId"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	FullName          string  `json:"fullName"`
	ImageURL          string  `json:"imageUrl,omitempty"`
	TotalPoints       int     `json:"totalPoints"`
	MatchesPlayed     int     `json:"matchesPlayed"`
	MatchesWon        int     `json:"matchesWon"`
	MatchesDrawn      int     `json:"matchesDrawn"`
	MatchesLost       int     `json:"matchesLost"`
	GoalsFor          *int    `json:"goalsFor,omitempty"`
	CurrentWinStreak  *int    `json:"currentWinStreak,omitempty"`
	CurrentLossStreak *int    `json:"currentLossStreak,omitempty"`
	AttendanceRate    float64 `json:"attendanceRate"`
	WinRate           float64 `json:"winRate"`
	DrawRate          float64 `json:"drawRate"`
	LossRate          float64 `json:"lossRate"`
}

type matchPlayerDTO struct {
	PlayerID  string `json:"playerId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Goals     int    `json:"goals"`
}

type matchDTO struct {
	MatchID      string           `json:"matchId"`
	MatchDate    string           `json:"matchDate"`
	Team1Score   int              `json:"team1Score"`
	Team2Score   int              `json:"team2Score"`
	Team1Players []matchPlayerDTO `json:"team1Players"`
	Team2Players []matchPlayerDTO `json:"team2Players"`
	MvpPlayerID  string           `json:"mvpPlayerId,omitempty"`
}

type leagueViewDTO struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	PlayersPerTeam  int           `json:"playersPerTeam"`
	Status          string        `json:"status"`
	Scoring         scoringDTO    `json:"scoring"`
	Players         []playerDTO   `json:"players"`
	PlayerStandings []standingDTO `json:"playerStandings"`
	Matches         []matchDTO    `json:"matches"`
	CreatedAt       string        `json:"createdAt"`
}

type leagueSummaryDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	PlayersPerTeam int     `json:"playersPerTeam"`
	TotalPlayers   int     `json:"totalPlayers"`
	TotalMatches   int     `json:"totalMatches"`
	CreatedAt      string  `json:"createdAt"`
	LastMatchDate  *string `json:"lastMatchDate,omitempty"`
}

type matchupPlayerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type matchupStatsDTO struct {
	Player1Wins  int    `json:"player1Wins"`
	Player2Wins  int    `json:"player2Wins"`
	Draws        int    `json:"draws"`
	TotalMatches int    `json:"totalMatches"`
	Summary      string `json:"summary"`
}

type matchupDetailDTO struct {
	Goals            int  `json:"goals"`
	WasInWinningTeam bool `json:"wasInWinningTeam"`
}

type matchupHistoryDTO struct {
	MatchID        string           `json:"matchId"`
	MatchDate      string           `json:"matchDate"`
	Team1Score     int              `json:"team1Score"`
	Team2Score     int              `json:"team2Score"`
	Result         string           `json:"result"`
	Player1Details matchupDetailDTO `json:"player1Details"`
	Player2Details matchupDetailDTO `json:"player2Details"`
}

type matchupDTO struct {
	Player1 matchupPlayerDTO    `json:"player1"`
	Player2 matchupPlayerDTO    `json:"player2"`
	Stats   matchupStatsDTO     `json:"stats"`
	Matches []matchupHistoryDTO `json:"matches"`
}

type warmupResultDTO struct {
	LeagueCount int   `json:"leagueCount"`
	WarmedCount int   `json:"warmedCount"`
	FailedCount int   `json:"failedCount"`
	WorkerCount int   `json:"workerCount"`
	DurationMS  int64 `json:"durationMs"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseMatchDate accepts RFC 3339 timestamps and plain calendar dates.
func parseMatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("%w: matchDate must be an RFC 3339 timestamp or YYYY-MM-DD date", usecase.ErrInvalidInput)
}

func scoringFromDTO(in scoringDTO) league.ScoringRules {
	return league.ScoringRules{
		PointsPerWin:            in.PointsPerWin,
		PointsPerDraw:           in.PointsPerDraw,
		PointsPerLoss:           in.PointsPerLoss,
		PointsPerMatchPlayed:    in.PointsPerMatchPlayed,
		IsGoalsEnabled:          in.IsGoalsEnabled,
		PointsPerGoal:           in.PointsPerGoal,
		IsWinStreakEnabled:      in.IsWinStreakEnabled,
		PointsPerWinInStreak:    in.PointsPerWinInStreak,
		MinWinStreakToActivate:  in.MinWinStreakToActivate,
		IsLossStreakEnabled:     in.IsLossStreakEnabled,
		PointsPerLossInStreak:   in.PointsPerLossInStreak,
		MinLossStreakToActivate: in.MinLossStreakToActivate,
		IsMvpEnabled:            in.IsMvpEnabled,
		PointsPerMvp:            in.PointsPerMvp,
	}
}

func scoringToDTO(in league.ScoringRules) scoringDTO {
	return scoringDTO{
		PointsPerWin:            in.PointsPerWin,
		PointsPerDraw:           in.PointsPerDraw,
		PointsPerLoss:           in.PointsPerLoss,
		PointsPerMatchPlayed:    in.PointsPerMatchPlayed,
		IsGoalsEnabled:          in.IsGoalsEnabled,
		PointsPerGoal:           in.PointsPerGoal,
		IsWinStreakEnabled:      in.IsWinStreakEnabled,
		PointsPerWinInStreak:    in.PointsPerWinInStreak,
		MinWinStreakToActivate:  in.MinWinStreakToActivate,
		IsLossStreakEnabled:     in.IsLossStreakEnabled,
		PointsPerLossInStreak:   in.PointsPerLossInStreak,
		MinLossStreakToActivate: in.MinLossStreakToActivate,
		IsMvpEnabled:            in.IsMvpEnabled,
		PointsPerMvp:            in.PointsPerMvp,
	}
}

func rosterEntriesFromRequest(in []rosterEntryRequest) []usecase.RosterEntryInput {
	out := make([]usecase.RosterEntryInput, 0, len(in))
	for _, entry := range in {
		item := usecase.RosterEntryInput{PlayerID: entry.PlayerID, Goals: entry.Goals}
		if entry.NewPlayer != nil {
			item.NewPlayer = &usecase.NewPlayerInput{
				FirstName: entry.NewPlayer.FirstName,
				LastName:  entry.NewPlayer.LastName,
			}
		}
		out = append(out, item)
	}
	return out
}

func playerToDTO(_ context.Context, p player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		LeagueID:  p.LeagueID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName(),
		ImageURL:  p.ImageURL,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func playersToDTO(ctx context.Context, items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(ctx, p))
	}
	return out
}

// standingsToDTO emits the optional columns only when the league tracks them.
func standingsToDTO(_ context.Context, rules league.ScoringRules, items []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		item := standingDTO{
			Position:       s.Position,
			PlayerID:       s.PlayerID,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			FullName:       s.FullName(),
			ImageURL:       s.ImageURL,
			TotalPoints:    s.TotalPoints,
			MatchesPlayed:  s.MatchesPlayed,
			MatchesWon:     s.MatchesWon,
			MatchesDrawn:   s.MatchesDrawn,
			MatchesLost:    s.MatchesLost,
			AttendanceRate: s.AttendanceRate,
			WinRate:        s.WinRate,
			DrawRate:       s.DrawRate,
			LossRate:       s.LossRate,
		}
		if rules.IsGoalsEnabled {
			item.GoalsFor = &s.GoalsFor
		}
		if rules.IsWinStreakEnabled {
			item.CurrentWinStreak = &s.CurrentWinStreak
		}
		if rules.IsLossStreakEnabled {
			item.CurrentLossStreak = &s.CurrentLossStreak
		}
		out = append(out, item)
	}
	return out
}

func matchesToDTO(_ context.Context, items []usecase.MatchSummary) []matchDTO {
	participants := func(in []usecase.MatchParticipant) []matchPlayerDTO {
		out := make([]matchPlayerDTO, 0, len(in))
		for _, p := range in {
			out = append(out, matchPlayerDTO{
				PlayerID:  p.Player.ID,
				FirstName: p.Player.FirstName,
				LastName:  p.Player.LastName,
				FullName:  p.Player.FullName(),
				ImageURL:  p.Player.ImageURL,
				Goals:     p.Goals,
			})
		}
		return out
	}

	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		item := matchDTO{
			MatchID:      m.ID,
			MatchDate:    formatTime(m.PlayedAt),
			Team1Score:   m.Team1Score,
			Team2Score:   m.Team2Score,
			Team1Players: participants(m.Team1),
			Team2Players: participants(m.Team2),
		}
		if m.MVP != nil {
			item.MvpPlayerID = m.MVP.ID
		}
		out = append(out, item)
	}
	return out
}

func leagueViewToDTO(ctx context.Context, view usecase.LeagueView) leagueViewDTO {
	return leagueViewDTO{
		ID:              view.League.ID,
		Name:            view.League.Name,
		Slug:            view.League.Slug,
		PlayersPerTeam:  view.League.PlayersPerTeam,
		Status:          string(view.Status),
		Scoring:         scoringToDTO(view.League.Scoring),
		Players:         playersToDTO(ctx, view.Players),
		PlayerStandings: standingsToDTO(ctx, view.League.Scoring, view.Standings),
		Matches:         matchesToDTO(ctx, view.Matches),
		CreatedAt:       formatTime(view.League.CreatedAt),
	}
}

func leagueSummaryToDTO(_ context.Context, s league.Summary) leagueSummaryDTO {
	item := leagueSummaryDTO{
		ID:             s.League.ID,
		Name:           s.League.Name,
		Slug:           s.League.Slug,
		PlayersPerTeam: s.League.PlayersPerTeam,
		TotalPlayers:   s.TotalPlayers,
		TotalMatches:   s.TotalMatches,
		CreatedAt:      formatTime(s.League.CreatedAt),
	}
	if s.LastMatchDate != nil {
		formatted := formatTime(*s.LastMatchDate)
		item.LastMatchDate = &formatted
	}
	return item
}

func matchupToDTO(_ context.Context, report matchup.Report) matchupDTO {
	toPlayer := func(p player.Player) matchupPlayerDTO {
		return matchupPlayerDTO{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, FullName: p.FullName()}
	}

	history := make([]matchupHistoryDTO, 0, len(report.History))
	for _, h := range report.History {
		history = append(history, matchupHistoryDTO{
			MatchID:        h.MatchID,
			MatchDate:      formatTime(h.PlayedAt),
			Team1Score:     h.Team1Score,
			Team2Score:     h.Team2Score,
			Result:         h.Result,
			Player1Details: matchupDetailDTO{Goals: h.Player1.Goals, WasInWinningTeam: h.Player1.WasInWinningTeam},
			Player2Details: matchupDetailDTO{Goals: h.Player2.Goals, WasInWinningTeam: h.Player2.WasInWinningTeam},
		})
	}

	return matchupDTO{
		Player1: toPlayer(report.Player1),
		Player2: toPlayer(report.Player2),
		Stats: matchupStatsDTO{
			Player1Wins:  report.Stats.Player1Wins,
			Player2Wins:  report.Stats.Player2Wins,
			Draws:        report.Stats.Draws,
			TotalMatches: report.Stats.TotalMatches,
			Summary:      report.Stats.Summary,
		},
		Matches: history,
	}
}
