package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/riskibarqy/fulbito-league/internal/domain/standing"
	"github.com/riskibarqy/fulbito-league/internal/domain/user"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
	"github.com/sourcegraph/conc/pool"
)

const (
	maxSlugAttempts       = 50
	summaryFanOutWorkers  = 4
	maxInitialRosterCount = 200
)

type CreateLeagueInput struct {
	Name           string
	PlayersPerTeam int
	Scoring        league.ScoringRules
	Players        []NewPlayerInput
}

// LeagueView is everything the league page renders in one payload.
type LeagueView struct {
	League    league.League
	Status    league.Status
	Players   []player.Player
	Standings []standing.Standing
	Matches   []MatchSummary
}

type LeagueService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	standings  *StandingService
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	standings *StandingService,
	idGen idgen.Generator,
) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		standings:  standings,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) Create(ctx context.Context, principal user.Principal, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	if err := requirePrincipal(principal); err != nil {
		return league.League{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	baseSlug := slug.Make(input.Name)
	if baseSlug == "" {
		return league.League{}, fmt.Errorf("%w: league name must contain letters or digits", ErrInvalidInput)
	}
	if len(input.Players) > maxInitialRosterCount {
		return league.League{}, fmt.Errorf("%w: at most %d initial players", ErrInvalidInput, maxInitialRosterCount)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	now := s.now().UTC()
	item := league.League{
		ID:             leagueID,
		OwnerUserID:    strings.TrimSpace(principal.UserID),
		Name:           input.Name,
		Slug:           baseSlug,
		PlayersPerTeam: input.PlayersPerTeam,
		Scoring:        input.Scoring.Normalize(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, classifyDomainError("create league", err)
	}

	roster, err := s.buildRoster(item.ID, input.Players, now)
	if err != nil {
		return league.League{}, err
	}

	// A concurrent create can take the probed slug, so a taken slug on
	// write moves on to the next suffix.
	next := 1
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate, n, err := s.nextFreeSlug(ctx, baseSlug, next)
		if err != nil {
			return league.League{}, err
		}
		item.Slug = candidate
		err = s.leagueRepo.Create(ctx, item, roster)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, league.ErrSlugTaken) {
			return league.League{}, classifyDomainError("create league", err)
		}
		next = n + 1
	}

	return league.League{}, fmt.Errorf("%w: could not allocate a slug for %q", ErrConflict, input.Name)
}

// nextFreeSlug probes base, base-2, base-3 and so on starting at suffix n.
func (s *LeagueService) nextFreeSlug(ctx context.Context, base string, n int) (string, int, error) {
	for ; n < maxSlugAttempts+1; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		exists, err := s.leagueRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", 0, fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, n, nil
		}
	}
	return "", 0, fmt.Errorf("%w: could not allocate a slug for %q", ErrConflict, base)
}

func (s *LeagueService) buildRoster(leagueID string, inputs []NewPlayerInput, now time.Time) ([]player.Player, error) {
	roster := make([]player.Player, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		firstName := strings.TrimSpace(in.FirstName)
		lastName := strings.TrimSpace(in.LastName)
		if err := player.ValidateName(firstName, lastName); err != nil {
			return nil, classifyDomainError(fmt.Sprintf("players[%d]", i), err)
		}
		key := player.NameKey(firstName, lastName)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %w: %s %s", ErrConflict, player.ErrDuplicateName, firstName, lastName)
		}
		seen[key] = struct{}{}

		playerID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate player id: %w", err)
		}
		roster = append(roster, player.Player{
			ID:        playerID,
			LeagueID:  leagueID,
			FirstName: firstName,
			LastName:  lastName,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return roster, nil
}

func (s *LeagueService) GetBySlug(ctx context.Context, slug string) (LeagueView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetBySlug", slugAttr(slug))
	defer span.End()

	item, err := loadLeagueBySlug(ctx, s.leagueRepo, slug)
	if err != nil {
		return LeagueView{}, err
	}
	return s.buildView(ctx, item)
}

func (s *LeagueService) GetAdmin(ctx context.Context, principal user.Principal, leagueID string) (LeagueView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetAdmin", leagueAttr(leagueID))
	defer span.End()

	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, leagueID)
	if err != nil {
		return LeagueView{}, err
	}
	return s.buildView(ctx, item)
}

func (s *LeagueService) buildView(ctx context.Context, item league.League) (LeagueView, error) {
	roster, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("list matches: %w", err)
	}

	standings, err := s.standings.fromSnapshot(ctx, item, roster, matches)
	if err != nil {
		return LeagueView{}, err
	}
	summaries, err := summarizeMatches(item.ID, roster, matches)
	if err != nil {
		return LeagueView{}, err
	}

	return LeagueView{
		League:    item,
		Status:    league.StatusFor(len(matches)),
		Players:   roster,
		Standings: standings,
		Matches:   summaries,
	}, nil
}

// ListMine returns summaries of the caller's leagues, newest first.
func (s *LeagueService) ListMine(ctx context.Context, principal user.Principal) ([]league.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	leagues, err := s.leagueRepo.ListByOwner(ctx, strings.TrimSpace(principal.UserID))
	if err != nil {
		return nil, fmt.Errorf("list leagues by owner: %w", err)
	}

	summaries := make([]league.Summary, len(leagues))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(summaryFanOutWorkers)
	for i, item := range leagues {
		p.Go(func(ctx context.Context) error {
			summary, err := s.summarize(ctx, item)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *LeagueService) summarize(ctx context.Context, item league.League) (league.Summary, error) {
	roster, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return league.Summary{}, fmt.Errorf("list players for league=%s: %w", item.ID, err)
	}
	matches, err := s.matchRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return league.Summary{}, fmt.Errorf("list matches for league=%s: %w", item.ID, err)
	}

	summary := league.Summary{
		League:       item,
		TotalPlayers: len(roster),
		TotalMatches: len(matches),
	}
	if len(matches) > 0 {
		// Matches come back chronological, so the last one is the latest.
		last := matches[len(matches)-1].PlayedAt
		summary.LastMatchDate = &last
	}
	return summary, nil
}
