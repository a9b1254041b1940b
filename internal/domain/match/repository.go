package match

import (
	"context"

	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

// Repository stores matches. Record is atomic: the new players and the match
// are written together or not at all, and the league version is bumped.
type Repository interface {
	// Record assigns the match sequence and returns the stored match. It
	// returns ErrUnknownPlayer when a roster entry does not belong to the
	// league and player.ErrDuplicateName when a new player collides.
	Record(ctx context.Context, item Match, newPlayers []player.Player) (Match, error)
	// ListByLeague returns matches in chronological order.
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
}
