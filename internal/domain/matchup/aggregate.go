package matchup

import (
	"fmt"
	"slices"

	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

// Aggregate reduces a league's matches to the head-to-head record of p1
// against p2. Only matches where the two were on opposing teams qualify.
func Aggregate(p1, p2 player.Player, matches []match.Match) Report {
	ordered := slices.Clone(matches)
	match.SortRecentFirst(ordered)

	report := Report{
		Player1: p1,
		Player2: p2,
		History: make([]HistoryEntry, 0),
	}
	for _, m := range ordered {
		entry1, side1, ok1 := m.Find(p1.ID)
		entry2, side2, ok2 := m.Find(p2.ID)
		if !ok1 || !ok2 || side1 == side2 {
			continue
		}

		outcome1 := m.OutcomeFor(side1)
		item := HistoryEntry{
			MatchID:    m.ID,
			PlayedAt:   m.PlayedAt,
			Team1Score: m.Team1Score,
			Team2Score: m.Team2Score,
			Player1:    PlayerDetail{Goals: entry1.Goals, WasInWinningTeam: outcome1 == match.OutcomeWin},
			Player2:    PlayerDetail{Goals: entry2.Goals, WasInWinningTeam: m.OutcomeFor(side2) == match.OutcomeWin},
		}
		switch outcome1 {
		case match.OutcomeWin:
			report.Stats.Player1Wins++
			item.Result = resultWinPrefix + p1.FirstName
		case match.OutcomeLoss:
			report.Stats.Player2Wins++
			item.Result = resultWinPrefix + p2.FirstName
		default:
			report.Stats.Draws++
			item.Result = ResultDraw
		}
		report.History = append(report.History, item)
	}

	report.Stats.TotalMatches = report.Stats.Player1Wins + report.Stats.Player2Wins + report.Stats.Draws
	report.Stats.Summary = summarize(p1, p2, report.Stats)
	return report
}

func summarize(p1, p2 player.Player, s Stats) string {
	switch {
	case s.TotalMatches == 0:
		return "Sin enfrentamientos"
	case s.Player1Wins > s.Player2Wins:
		return fmt.Sprintf("%s lidera %d-%d", p1.FullName(), s.Player1Wins, s.Player2Wins)
	case s.Player2Wins > s.Player1Wins:
		return fmt.Sprintf("%s lidera %d-%d", p2.FullName(), s.Player2Wins, s.Player1Wins)
	default:
		return fmt.Sprintf("Empatados %d-%d", s.Player1Wins, s.Player2Wins)
	}
}
