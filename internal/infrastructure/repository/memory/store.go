package memory

import (
	"sync"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

// Store holds every league aggregate behind one lock so that roster and match
// writes for a league are serialized and readers never see partial writes.
type Store struct {
	mu       sync.RWMutex
	leagues  map[string]league.League
	orders   []string
	slugs    map[string]string
	players  map[string]map[string]player.Player
	matches  map[string][]match.Match
	sequence int64
}

func NewStore() *Store {
	return &Store{
		leagues: make(map[string]league.League),
		slugs:   make(map[string]string),
		players: make(map[string]map[string]player.Player),
		matches: make(map[string][]match.Match),
	}
}

// bumpVersion must be called with mu held for writing.
func (s *Store) bumpVersion(leagueID string) {
	l, ok := s.leagues[leagueID]
	if !ok {
		return
	}
	l.Version++
	s.leagues[leagueID] = l
}

// nameTaken must be called with mu held.
func (s *Store) nameTaken(leagueID, nameKey, exceptPlayerID string) bool {
	for id, p := range s.players[leagueID] {
		if id == exceptPlayerID {
			continue
		}
		if p.NameKey() == nameKey {
			return true
		}
	}
	return false
}

// hasParticipations must be called with mu held.
func (s *Store) hasParticipations(leagueID, playerID string) bool {
	for _, m := range s.matches[leagueID] {
		if _, _, ok := m.Find(playerID); ok {
			return true
		}
	}
	return false
}
