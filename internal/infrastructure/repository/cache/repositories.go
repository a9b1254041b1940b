package cache

import (
	"context"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
)

// Every cached value that depends on league data lives under
// "league:<id>:" so one prefix delete invalidates it after a write.
func leaguePrefix(leagueID string) string {
	return "league:" + leagueID + ":"
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League, roster []player.Player) error {
	return r.next.Create(ctx, item, roster)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := leaguePrefix(leagueID) + "meta"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

// GetBySlug caches only the slug to id mapping, which never changes once
// assigned. The league itself comes from the id-keyed entry.
func (r *LeagueRepository) GetBySlug(ctx context.Context, slug string) (league.League, bool, error) {
	key := "slug:" + slug
	if v, ok := r.cache.Get(ctx, key); ok {
		if leagueID, _ := v.(string); leagueID != "" {
			return r.GetByID(ctx, leagueID)
		}
	}

	item, exists, err := r.next.GetBySlug(ctx, slug)
	if err != nil || !exists {
		return item, exists, err
	}
	r.cache.Set(ctx, key, item.ID)
	r.cache.Set(ctx, leaguePrefix(item.ID)+"meta", cachedLeague{value: item, exists: true})
	return item, true, nil
}

func (r *LeagueRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.next.SlugExists(ctx, slug)
}

func (r *LeagueRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]league.League, error) {
	return r.next.ListByOwner(ctx, ownerUserID)
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.next.List(ctx)
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguePrefix(leagueID)+"players", func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	return r.next.GetByID(ctx, leagueID, playerID)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix(item.LeagueID))
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix(item.LeagueID))
	return r.next.Update(ctx, item)
}

func (r *PlayerRepository) Delete(ctx context.Context, leagueID, playerID string) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix(leagueID))
	return r.next.Delete(ctx, leagueID, playerID)
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) Record(ctx context.Context, item match.Match, newPlayers []player.Player) (match.Match, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix(item.LeagueID))
	return r.next.Record(ctx, item, newPlayers)
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguePrefix(leagueID)+"matches", func(ctx context.Context) (any, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	out := make([]match.Match, 0, len(items))
	for _, m := range items {
		out = append(out, match.Clone(m))
	}
	return out, nil
}
