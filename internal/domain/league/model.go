package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxNameLength     = 100
	MaxPlayersPerTeam = 11
)

var (
	ErrInvalidLeague = errors.New("invalid league")
	ErrSlugTaken     = errors.New("league slug already taken")
)

// League is a recurring pickup league run by one owner.
type League struct {
	ID             string
	OwnerUserID    string
	Name           string
	Slug           string
	PlayersPerTeam int
	Scoring        ScoringRules
	// Version is bumped on every accepted match and roster change.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidLeague)
	}
	if strings.TrimSpace(l.OwnerUserID) == "" {
		return fmt.Errorf("%w: league owner is required", ErrInvalidLeague)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: league name is required", ErrInvalidLeague)
	}
	if len([]rune(l.Name)) > MaxNameLength {
		return fmt.Errorf("%w: league name must be at most %d characters", ErrInvalidLeague, MaxNameLength)
	}
	if strings.TrimSpace(l.Slug) == "" {
		return fmt.Errorf("%w: league slug is required", ErrInvalidLeague)
	}
	if l.PlayersPerTeam < 1 || l.PlayersPerTeam > MaxPlayersPerTeam {
		return fmt.Errorf("%w: players per team must be between 1 and %d", ErrInvalidLeague, MaxPlayersPerTeam)
	}

	return l.Scoring.Validate()
}

func (l League) IsOwnedBy(userID string) bool {
	return l.OwnerUserID != "" && l.OwnerUserID == strings.TrimSpace(userID)
}

// Status is the maturity label shown next to a league.
type Status string

const (
	StatusStarting    Status = "Empezando"
	StatusActive      Status = "Activa"
	StatusEstablished Status = "Establecida"
)

const establishedMatchThreshold = 5

func StatusFor(totalMatches int) Status {
	switch {
	case totalMatches <= 0:
		return StatusStarting
	case totalMatches < establishedMatchThreshold:
		return StatusActive
	default:
		return StatusEstablished
	}
}

// Summary is the owner-facing overview of a league.
type Summary struct {
	League        League
	TotalPlayers  int
	TotalMatches  int
	LastMatchDate *time.Time
}
