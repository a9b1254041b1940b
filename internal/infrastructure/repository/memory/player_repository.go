package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(s.players[leagueID]))
	for _, p := range s.players[leagueID] {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b player.Player) int {
		return cmp.Or(cmp.Compare(a.NameKey(), b.NameKey()), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, leagueID, playerID string) (player.Player, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[leagueID][playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[item.LeagueID]; !ok {
		return fmt.Errorf("create player: league %s not found", item.LeagueID)
	}
	if s.nameTaken(item.LeagueID, item.NameKey(), "") {
		return fmt.Errorf("%w: %s", player.ErrDuplicateName, item.FullName())
	}
	if s.players[item.LeagueID] == nil {
		s.players[item.LeagueID] = make(map[string]player.Player)
	}
	s.players[item.LeagueID][item.ID] = item
	s.bumpVersion(item.LeagueID)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[item.LeagueID][item.ID]; !ok {
		return fmt.Errorf("update player: player %s not found", item.ID)
	}
	if s.nameTaken(item.LeagueID, item.NameKey(), item.ID) {
		return fmt.Errorf("%w: %s", player.ErrDuplicateName, item.FullName())
	}
	s.players[item.LeagueID][item.ID] = item
	s.bumpVersion(item.LeagueID)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, leagueID, playerID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[leagueID][playerID]; !ok {
		return fmt.Errorf("delete player: player %s not found", playerID)
	}
	if s.hasParticipations(leagueID, playerID) {
		return fmt.Errorf("%w: %s", player.ErrHasMatches, playerID)
	}
	delete(s.players[leagueID], playerID)
	s.bumpVersion(leagueID)
	return nil
}
