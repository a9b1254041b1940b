package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Record(_ context.Context, item match.Match, newPlayers []player.Player) (match.Match, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[item.LeagueID]; !ok {
		return match.Match{}, fmt.Errorf("record match: league %s not found", item.LeagueID)
	}

	// Everything is checked before the first mutation, so a rejected
	// recording leaves no new player behind.
	pending := make(map[string]player.Player, len(newPlayers))
	pendingKeys := make(map[string]struct{}, len(newPlayers))
	for _, p := range newPlayers {
		key := p.NameKey()
		if _, dup := pendingKeys[key]; dup || s.nameTaken(item.LeagueID, key, "") {
			return match.Match{}, fmt.Errorf("%w: %s", player.ErrDuplicateName, p.FullName())
		}
		pendingKeys[key] = struct{}{}
		pending[p.ID] = p
	}
	for _, id := range item.ParticipantIDs() {
		if _, ok := s.players[item.LeagueID][id]; ok {
			continue
		}
		if _, ok := pending[id]; ok {
			continue
		}
		return match.Match{}, fmt.Errorf("%w: %s", match.ErrUnknownPlayer, id)
	}

	if s.players[item.LeagueID] == nil {
		s.players[item.LeagueID] = make(map[string]player.Player)
	}
	for id, p := range pending {
		s.players[item.LeagueID][id] = p
	}

	s.sequence++
	stored := match.Clone(item)
	stored.Sequence = s.sequence
	s.matches[item.LeagueID] = append(s.matches[item.LeagueID], stored)
	match.SortChronological(s.matches[item.LeagueID])
	s.bumpVersion(item.LeagueID)

	return match.Clone(stored), nil
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.matches[leagueID]
	out := make([]match.Match, 0, len(items))
	for _, m := range items {
		out = append(out, match.Clone(m))
	}
	return out, nil
}
