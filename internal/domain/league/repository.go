package league

import (
	"context"

	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

// Repository describes league persistence needs from use cases.
type Repository interface {
	// Create stores the league together with its initial roster in one write.
	Create(ctx context.Context, item League, roster []player.Player) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetBySlug(ctx context.Context, slug string) (League, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]League, error)
	List(ctx context.Context) ([]League, error)
}
