package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const MaxNameLength = 50

var (
	ErrInvalidPlayer = errors.New("invalid player")
	ErrDuplicateName = errors.New("player name already exists in league")
	ErrHasMatches    = errors.New("player has recorded matches")
)

// Player is a roster member of a single league.
type Player struct {
	ID        string
	LeagueID  string
	FirstName string
	LastName  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NameKey is the comparison key used for duplicate-name checks.
func (p Player) NameKey() string {
	return NameKey(p.FirstName, p.LastName)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidPlayer)
	}
	if strings.TrimSpace(p.LeagueID) == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidPlayer)
	}

	return ValidateName(p.FirstName, p.LastName)
}

func ValidateName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidPlayer)
	}
	if lastName == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidPlayer)
	}
	if len([]rune(firstName)) > MaxNameLength {
		return fmt.Errorf("%w: first name must be at most %d characters", ErrInvalidPlayer, MaxNameLength)
	}
	if len([]rune(lastName)) > MaxNameLength {
		return fmt.Errorf("%w: last name must be at most %d characters", ErrInvalidPlayer, MaxNameLength)
	}

	return nil
}

// NameKey folds case and collapses inner whitespace so "josé  PÉREZ" and
// "José Pérez" collide.
func NameKey(firstName, lastName string) string {
	full := strings.Join(strings.Fields(firstName+" "+lastName), " ")
	return cases.Fold().String(full)
}
