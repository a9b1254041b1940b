package standing

import (
	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
)

// Streak is the running win/loss streak of one player. At most one of the
// counters is non-zero.
type Streak struct {
	Wins   int
	Losses int
}

// Apply advances the streak with the next chronological outcome and returns
// the streak bonus earned by that match under rules.
func (s *Streak) Apply(outcome match.Outcome, rules league.ScoringRules) int {
	switch outcome {
	case match.OutcomeWin:
		s.Wins++
		s.Losses = 0
		return rules.WinStreakBonus(s.Wins)
	case match.OutcomeLoss:
		s.Losses++
		s.Wins = 0
		return rules.LossStreakBonus(s.Losses)
	default:
		s.Wins = 0
		s.Losses = 0
		return 0
	}
}
