package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) Create(_ context.Context, item league.League, roster []player.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leagues[item.ID]; exists {
		return fmt.Errorf("create league: id %s already exists", item.ID)
	}
	if _, exists := s.slugs[item.Slug]; exists {
		return fmt.Errorf("%w: %s", league.ErrSlugTaken, item.Slug)
	}

	members := make(map[string]player.Player, len(roster))
	keys := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		key := p.NameKey()
		if _, dup := keys[key]; dup {
			return fmt.Errorf("%w: %s", player.ErrDuplicateName, p.FullName())
		}
		keys[key] = struct{}{}
		members[p.ID] = p
	}

	s.leagues[item.ID] = item
	s.orders = append(s.orders, item.ID)
	s.slugs[item.Slug] = item.ID
	s.players[item.ID] = members
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) GetBySlug(_ context.Context, slug string) (league.League, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	if !ok {
		return league.League{}, false, nil
	}
	return s.leagues[id], true, nil
}

func (r *LeagueRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.slugs[slug]
	return ok, nil
}

func (r *LeagueRepository) ListByOwner(_ context.Context, ownerUserID string) ([]league.League, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range s.orders {
		if l := s.leagues[id]; l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}
	slices.Reverse(out)
	return out, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]league.League, 0, len(s.orders))
	for _, id := range s.orders {
		out = append(out, s.leagues[id])
	}
	return out, nil
}
