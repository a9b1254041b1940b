package league

import (
	"errors"
	"fmt"
)

var ErrInvalidScoringRules = errors.New("invalid scoring rules")

// ScoringRules holds the point values a league awards. Loss points may be
// zero or negative.
type ScoringRules struct {
	PointsPerWin         int
	PointsPerDraw        int
	PointsPerLoss        int
	PointsPerMatchPlayed int

	IsGoalsEnabled bool
	PointsPerGoal  int

	IsWinStreakEnabled     bool
	PointsPerWinInStreak   int
	MinWinStreakToActivate int

	IsLossStreakEnabled     bool
	PointsPerLossInStreak   int
	MinLossStreakToActivate int

	IsMvpEnabled bool
	PointsPerMvp int
}

func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		PointsPerWin:            3,
		PointsPerDraw:           1,
		PointsPerLoss:           0,
		PointsPerMatchPlayed:    0,
		MinWinStreakToActivate:  1,
		MinLossStreakToActivate: 1,
	}
}

// Normalize fills streak minimums for disabled streak toggles so stored
// rules always carry positive thresholds.
func (r ScoringRules) Normalize() ScoringRules {
	if !r.IsWinStreakEnabled && r.MinWinStreakToActivate < 1 {
		r.MinWinStreakToActivate = 1
	}
	if !r.IsLossStreakEnabled && r.MinLossStreakToActivate < 1 {
		r.MinLossStreakToActivate = 1
	}
	return r
}

func (r ScoringRules) Validate() error {
	if r.MinWinStreakToActivate < 1 {
		return fmt.Errorf("%w: min win streak to activate must be >= 1", ErrInvalidScoringRules)
	}
	if r.MinLossStreakToActivate < 1 {
		return fmt.Errorf("%w: min loss streak to activate must be >= 1", ErrInvalidScoringRules)
	}

	return nil
}

// WinStreakBonus returns the extra points earned by a win that leaves the
// player on the given win streak.
func (r ScoringRules) WinStreakBonus(streak int) int {
	if !r.IsWinStreakEnabled || streak < r.MinWinStreakToActivate {
		return 0
	}
	return r.PointsPerWinInStreak
}

func (r ScoringRules) LossStreakBonus(streak int) int {
	if !r.IsLossStreakEnabled || streak < r.MinLossStreakToActivate {
		return 0
	}
	return r.PointsPerLossInStreak
}
