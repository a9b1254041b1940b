package match

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrInvalidRosterSize  = errors.New("invalid roster size")
	ErrDuplicatePlayer    = errors.New("player appears more than once in match")
	ErrNegativeGoals      = errors.New("goals cannot be negative")
	ErrNegativeScore      = errors.New("team score cannot be negative")
	ErrMVPNotParticipant  = errors.New("mvp must be a match participant")
	ErrUnknownPlayer      = errors.New("match references a player outside the league")
	ErrMissingPlayedAt    = errors.New("match date is required")
	ErrMissingMatchLeague = errors.New("match league is required")
)

// Side identifies one of the two teams in a match.
type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
)

// Outcome is a match result from one team's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
	OutcomeLoss Outcome = "loss"
)

// Entry is one roster slot: a player and the goals they scored.
type Entry struct {
	PlayerID string
	Goals    int
}

// Match is an immutable record of a played game.
type Match struct {
	ID       string
	LeagueID string
	// Sequence is the insertion order within the store, used to break ties
	// between matches played at the same instant.
	Sequence    int64
	PlayedAt    time.Time
	Team1       []Entry
	Team2       []Entry
	Team1Score  int
	Team2Score  int
	MVPPlayerID string
	CreatedAt   time.Time
}

// Winner returns the winning side, or SideNone on a draw.
func (m Match) Winner() Side {
	switch {
	case m.Team1Score > m.Team2Score:
		return SideTeam1
	case m.Team2Score > m.Team1Score:
		return SideTeam2
	default:
		return SideNone
	}
}

func (m Match) OutcomeFor(side Side) Outcome {
	winner := m.Winner()
	switch {
	case winner == SideNone:
		return OutcomeDraw
	case winner == side:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

// Find returns the roster entry and side of the player in this match.
func (m Match) Find(playerID string) (Entry, Side, bool) {
	for _, e := range m.Team1 {
		if e.PlayerID == playerID {
			return e, SideTeam1, true
		}
	}
	for _, e := range m.Team2 {
		if e.PlayerID == playerID {
			return e, SideTeam2, true
		}
	}
	return Entry{}, SideNone, false
}

func (m Match) Entries(side Side) []Entry {
	switch side {
	case SideTeam1:
		return m.Team1
	case SideTeam2:
		return m.Team2
	default:
		return nil
	}
}

func (m Match) ParticipantIDs() []string {
	out := make([]string, 0, len(m.Team1)+len(m.Team2))
	for _, e := range m.Team1 {
		out = append(out, e.PlayerID)
	}
	for _, e := range m.Team2 {
		out = append(out, e.PlayerID)
	}
	return out
}

// Validate checks the roster shape rules of a match. Player membership in the
// league is checked by the store at write time.
func (m Match) Validate(playersPerTeam int) error {
	if m.LeagueID == "" {
		return ErrMissingMatchLeague
	}
	if m.PlayedAt.IsZero() {
		return ErrMissingPlayedAt
	}
	if len(m.Team1) != playersPerTeam || len(m.Team2) != playersPerTeam {
		return fmt.Errorf("%w: expected %d per team, got %d and %d",
			ErrInvalidRosterSize, playersPerTeam, len(m.Team1), len(m.Team2))
	}
	if m.Team1Score < 0 || m.Team2Score < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNegativeScore, m.Team1Score, m.Team2Score)
	}

	seen := make(map[string]struct{}, len(m.Team1)+len(m.Team2))
	for _, e := range append(slices.Clone(m.Team1), m.Team2...) {
		if e.PlayerID == "" {
			return fmt.Errorf("%w: roster entry without player id", ErrUnknownPlayer)
		}
		if _, exists := seen[e.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, e.PlayerID)
		}
		seen[e.PlayerID] = struct{}{}
		if e.Goals < 0 {
			return fmt.Errorf("%w: player %s", ErrNegativeGoals, e.PlayerID)
		}
	}

	if m.MVPPlayerID != "" {
		if _, ok := seen[m.MVPPlayerID]; !ok {
			return fmt.Errorf("%w: %s", ErrMVPNotParticipant, m.MVPPlayerID)
		}
	}

	return nil
}

// SortChronological orders matches by date, then by insertion sequence.
func SortChronological(items []Match) {
	slices.SortStableFunc(items, compareChronological)
}

// SortRecentFirst is the display order for match history.
func SortRecentFirst(items []Match) {
	slices.SortStableFunc(items, func(a, b Match) int {
		return compareChronological(b, a)
	})
}

func compareChronological(a, b Match) int {
	if c := a.PlayedAt.Compare(b.PlayedAt); c != 0 {
		return c
	}
	switch {
	case a.Sequence < b.Sequence:
		return -1
	case a.Sequence > b.Sequence:
		return 1
	default:
		return 0
	}
}

func Clone(m Match) Match {
	copied := m
	copied.Team1 = slices.Clone(m.Team1)
	copied.Team2 = slices.Clone(m.Team2)
	return copied
}
