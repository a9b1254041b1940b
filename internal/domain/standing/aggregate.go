package standing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"golang.org/x/text/cases"
)

type accumulator struct {
	standing Standing
	streak   Streak
	sortKey  string
}

// Aggregate folds every match of a league into one standing per player that
// appears in at least one match. Matches may be passed in any order; they are
// processed chronologically. A roster entry for a player missing from roster
// is reported as match.ErrUnknownPlayer.
func Aggregate(rules league.ScoringRules, roster []player.Player, matches []match.Match) ([]Standing, error) {
	playersByID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		playersByID[p.ID] = p
	}

	ordered := slices.Clone(matches)
	match.SortChronological(ordered)

	folder := cases.Fold()
	accByPlayer := make(map[string]*accumulator)
	for _, m := range ordered {
		for _, side := range []match.Side{match.SideTeam1, match.SideTeam2} {
			outcome := m.OutcomeFor(side)
			for _, entry := range m.Entries(side) {
				acc, ok := accByPlayer[entry.PlayerID]
				if !ok {
					p, exists := playersByID[entry.PlayerID]
					if !exists {
						return nil, fmt.Errorf("%w: match=%s player=%s", match.ErrUnknownPlayer, m.ID, entry.PlayerID)
					}
					acc = &accumulator{
						standing: Standing{
							PlayerID:  p.ID,
							FirstName: p.FirstName,
							LastName:  p.LastName,
							ImageURL:  p.ImageURL,
						},
						sortKey: folder.String(p.FullName()),
					}
					accByPlayer[entry.PlayerID] = acc
				}
				applyEntry(acc, rules, m, entry, outcome)
			}
		}
	}

	totalMatches := len(ordered)
	out := make([]Standing, 0, len(accByPlayer))
	keys := make(map[string]string, len(accByPlayer))
	for _, acc := range accByPlayer {
		s := acc.standing
		s.CurrentWinStreak = acc.streak.Wins
		s.CurrentLossStreak = acc.streak.Losses
		s.AttendanceRate = percentage(s.MatchesPlayed, totalMatches)
		s.WinRate = percentage(s.MatchesWon, s.MatchesPlayed)
		s.DrawRate = percentage(s.MatchesDrawn, s.MatchesPlayed)
		s.LossRate = percentage(s.MatchesLost, s.MatchesPlayed)
		keys[s.PlayerID] = acc.sortKey
		out = append(out, s)
	}

	slices.SortFunc(out, func(a, b Standing) int {
		if a.TotalPoints != b.TotalPoints {
			return b.TotalPoints - a.TotalPoints
		}
		if a.MatchesWon != b.MatchesWon {
			return b.MatchesWon - a.MatchesWon
		}
		if c := strings.Compare(keys[a.PlayerID], keys[b.PlayerID]); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	for i := range out {
		out[i].Position = i + 1
	}

	return out, nil
}

func applyEntry(acc *accumulator, rules league.ScoringRules, m match.Match, entry match.Entry, outcome match.Outcome) {
	s := &acc.standing
	s.MatchesPlayed++
	s.TotalPoints += rules.PointsPerMatchPlayed

	switch outcome {
	case match.OutcomeWin:
		s.MatchesWon++
		s.TotalPoints += rules.PointsPerWin
	case match.OutcomeLoss:
		s.MatchesLost++
		s.TotalPoints += rules.PointsPerLoss
	default:
		s.MatchesDrawn++
		s.TotalPoints += rules.PointsPerDraw
	}

	if rules.IsGoalsEnabled {
		s.GoalsFor += entry.Goals
		s.TotalPoints += entry.Goals * rules.PointsPerGoal
	}
	if rules.IsMvpEnabled && m.MVPPlayerID != "" && m.MVPPlayerID == entry.PlayerID {
		s.TotalPoints += rules.PointsPerMvp
	}

	s.TotalPoints += acc.streak.Apply(outcome, rules)
}

func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
