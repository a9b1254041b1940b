package player

import "context"

// Repository describes roster persistence. Writes bump the owning league's
// version and return ErrDuplicateName when the name key is taken.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	GetByID(ctx context.Context, leagueID, playerID string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	// Delete returns ErrHasMatches when the player took part in any match.
	Delete(ctx context.Context, leagueID, playerID string) error
}
