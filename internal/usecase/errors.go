package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrIntegrity             = errors.New("data integrity violation")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyDomainError wraps known domain errors with the matching sentinel.
// Unknown errors are wrapped with op only.
func classifyDomainError(op string, err error) error {
	switch {
	case errors.Is(err, player.ErrDuplicateName),
		errors.Is(err, player.ErrHasMatches),
		errors.Is(err, league.ErrSlugTaken):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	case errors.Is(err, match.ErrUnknownPlayer):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, op, err)
	case errors.Is(err, player.ErrInvalidPlayer),
		errors.Is(err, league.ErrInvalidLeague),
		errors.Is(err, league.ErrInvalidScoringRules),
		errors.Is(err, match.ErrInvalidRosterSize),
		errors.Is(err, match.ErrDuplicatePlayer),
		errors.Is(err, match.ErrNegativeGoals),
		errors.Is(err, match.ErrNegativeScore),
		errors.Is(err, match.ErrMVPNotParticipant),
		errors.Is(err, match.ErrMissingPlayedAt),
		errors.Is(err, match.ErrMissingMatchLeague):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
