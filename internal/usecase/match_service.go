package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/riskibarqy/fulbito-league/internal/domain/user"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
)

type NewPlayerInput struct {
	FirstName string
	LastName  string
}

// RosterEntryInput references either an existing player or a new one.
// Exactly one of PlayerID and NewPlayer must be set.
type RosterEntryInput struct {
	PlayerID  string
	NewPlayer *NewPlayerInput
	Goals     int
}

type RecordMatchInput struct {
	LeagueID    string
	PlayedAt    time.Time
	Team1       []RosterEntryInput
	Team2       []RosterEntryInput
	Team1Score  int
	Team2Score  int
	MVPPlayerID string
}

// MatchParticipant is a roster slot resolved to its player.
type MatchParticipant struct {
	Player player.Player
	Goals  int
}

// MatchSummary is a recorded match with its players resolved for display.
type MatchSummary struct {
	ID         string
	PlayedAt   time.Time
	Team1Score int
	Team2Score int
	Team1      []MatchParticipant
	Team2      []MatchParticipant
	MVP        *player.Player
}

type MatchService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewMatchService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
) *MatchService {
	return &MatchService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *MatchService) Record(ctx context.Context, principal user.Principal, input RecordMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Record", leagueAttr(input.LeagueID))
	defer span.End()

	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, input.LeagueID)
	if err != nil {
		return match.Match{}, err
	}
	if input.PlayedAt.IsZero() {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, match.ErrMissingPlayedAt)
	}
	input.MVPPlayerID = strings.TrimSpace(input.MVPPlayerID)
	if input.MVPPlayerID != "" && !item.Scoring.IsMvpEnabled {
		return match.Match{}, fmt.Errorf("%w: mvp tracking is disabled for this league", ErrInvalidInput)
	}

	roster, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list players: %w", err)
	}
	resolver := newRosterResolver(item, roster, s.idGen, s.now().UTC())

	team1, err := resolver.resolveTeam("team1", input.Team1)
	if err != nil {
		return match.Match{}, err
	}
	team2, err := resolver.resolveTeam("team2", input.Team2)
	if err != nil {
		return match.Match{}, err
	}
	if input.MVPPlayerID != "" {
		if _, ok := resolver.existing[input.MVPPlayerID]; !ok {
			return match.Match{}, fmt.Errorf("%w: mvp player=%s", ErrNotFound, input.MVPPlayerID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	m := match.Match{
		ID:          matchID,
		LeagueID:    item.ID,
		PlayedAt:    input.PlayedAt.UTC(),
		Team1:       team1,
		Team2:       team2,
		Team1Score:  input.Team1Score,
		Team2Score:  input.Team2Score,
		MVPPlayerID: input.MVPPlayerID,
		CreatedAt:   resolver.now,
	}
	if err := m.Validate(item.PlayersPerTeam); err != nil {
		return match.Match{}, classifyDomainError("validate match", err)
	}

	stored, err := s.matchRepo.Record(ctx, m, resolver.created)
	if err != nil {
		return match.Match{}, classifyDomainError("record match", err)
	}
	return stored, nil
}

// rosterResolver turns tagged roster entries into match entries, minting
// players for new-player drafts.
type rosterResolver struct {
	league   league.League
	existing map[string]player.Player
	names    map[string]struct{}
	created  []player.Player
	idGen    idgen.Generator
	now      time.Time
}

func newRosterResolver(item league.League, roster []player.Player, idGen idgen.Generator, now time.Time) *rosterResolver {
	r := &rosterResolver{
		league:   item,
		existing: make(map[string]player.Player, len(roster)),
		names:    make(map[string]struct{}, len(roster)),
		idGen:    idGen,
		now:      now,
	}
	for _, p := range roster {
		r.existing[p.ID] = p
		r.names[p.NameKey()] = struct{}{}
	}
	return r
}

func (r *rosterResolver) resolveTeam(team string, entries []RosterEntryInput) ([]match.Entry, error) {
	out := make([]match.Entry, 0, len(entries))
	for i, entry := range entries {
		resolved, err := r.resolveEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", team, i, err)
		}
		if resolved.Goals < 0 {
			return nil, classifyDomainError(fmt.Sprintf("%s[%d]", team, i), match.ErrNegativeGoals)
		}
		if !r.league.Scoring.IsGoalsEnabled {
			resolved.Goals = 0
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *rosterResolver) resolveEntry(entry RosterEntryInput) (match.Entry, error) {
	playerID := strings.TrimSpace(entry.PlayerID)
	switch {
	case playerID != "" && entry.NewPlayer != nil:
		return match.Entry{}, fmt.Errorf("%w: entry must reference an existing player or a new player, not both", ErrInvalidInput)
	case playerID == "" && entry.NewPlayer == nil:
		return match.Entry{}, fmt.Errorf("%w: entry must reference an existing player or a new player", ErrInvalidInput)
	case playerID != "":
		if _, ok := r.existing[playerID]; !ok {
			return match.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		return match.Entry{PlayerID: playerID, Goals: entry.Goals}, nil
	}

	firstName := strings.TrimSpace(entry.NewPlayer.FirstName)
	lastName := strings.TrimSpace(entry.NewPlayer.LastName)
	if err := player.ValidateName(firstName, lastName); err != nil {
		return match.Entry{}, classifyDomainError("new player", err)
	}
	key := player.NameKey(firstName, lastName)
	if _, taken := r.names[key]; taken {
		return match.Entry{}, fmt.Errorf("%w: %w: %s %s", ErrConflict, player.ErrDuplicateName, firstName, lastName)
	}

	playerID, err := r.idGen.NewID()
	if err != nil {
		return match.Entry{}, fmt.Errorf("generate player id: %w", err)
	}
	r.names[key] = struct{}{}
	r.created = append(r.created, player.Player{
		ID:        playerID,
		LeagueID:  r.league.ID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: r.now,
		UpdatedAt: r.now,
	})
	return match.Entry{PlayerID: playerID, Goals: entry.Goals}, nil
}

func (s *MatchService) HistoryBySlug(ctx context.Context, slug string) ([]MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.HistoryBySlug", slugAttr(slug))
	defer span.End()

	item, err := loadLeagueBySlug(ctx, s.leagueRepo, slug)
	if err != nil {
		return nil, err
	}
	roster, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return summarizeMatches(item.ID, roster, matches)
}

// summarizeMatches resolves players and returns the matches most recent first.
func summarizeMatches(leagueID string, roster []player.Player, matches []match.Match) ([]MatchSummary, error) {
	byID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	ordered := make([]match.Match, len(matches))
	copy(ordered, matches)
	match.SortRecentFirst(ordered)

	resolve := func(m match.Match, entries []match.Entry) ([]MatchParticipant, error) {
		out := make([]MatchParticipant, 0, len(entries))
		for _, e := range entries {
			p, ok := byID[e.PlayerID]
			if !ok {
				return nil, fmt.Errorf("%w: league=%s match=%s player=%s", ErrIntegrity, leagueID, m.ID, e.PlayerID)
			}
			out = append(out, MatchParticipant{Player: p, Goals: e.Goals})
		}
		return out, nil
	}

	out := make([]MatchSummary, 0, len(ordered))
	for _, m := range ordered {
		team1, err := resolve(m, m.Team1)
		if err != nil {
			return nil, err
		}
		team2, err := resolve(m, m.Team2)
		if err != nil {
			return nil, err
		}
		summary := MatchSummary{
			ID:         m.ID,
			PlayedAt:   m.PlayedAt,
			Team1Score: m.Team1Score,
			Team2Score: m.Team2Score,
			Team1:      team1,
			Team2:      team2,
		}
		if mvp, ok := byID[m.MVPPlayerID]; ok {
			summary.MVP = &mvp
		}
		out = append(out, summary)
	}
	return out, nil
}
