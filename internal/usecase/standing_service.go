package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/riskibarqy/fulbito-league/internal/domain/standing"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
)

type StandingService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	cache      *basecache.Store
}

// NewStandingService builds the service. store may be nil, in which case
// standings are recomputed on every call.
func NewStandingService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	store *basecache.Store,
) *StandingService {
	return &StandingService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		cache:      store,
	}
}

// Board is a league's standings together with the league they were computed
// for, so callers can tell which optional columns apply.
type Board struct {
	League    league.League
	Standings []standing.Standing
}

func (s *StandingService) ListBySlug(ctx context.Context, slug string) ([]standing.Standing, error) {
	board, err := s.BoardBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return board.Standings, nil
}

func (s *StandingService) BoardBySlug(ctx context.Context, slug string) (Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.BoardBySlug", slugAttr(slug))
	defer span.End()

	item, err := loadLeagueBySlug(ctx, s.leagueRepo, slug)
	if err != nil {
		return Board{}, err
	}
	standings, err := s.ForLeague(ctx, item)
	if err != nil {
		return Board{}, err
	}
	return Board{League: item, Standings: standings}, nil
}

func (s *StandingService) ForLeague(ctx context.Context, item league.League) ([]standing.Standing, error) {
	return s.load(ctx, item, func(ctx context.Context) ([]player.Player, []match.Match, error) {
		roster, err := s.playerRepo.ListByLeague(ctx, item.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list players: %w", err)
		}
		matches, err := s.matchRepo.ListByLeague(ctx, item.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list matches: %w", err)
		}
		return roster, matches, nil
	})
}

// fromSnapshot aggregates data the caller already loaded for the same version.
func (s *StandingService) fromSnapshot(ctx context.Context, item league.League, roster []player.Player, matches []match.Match) ([]standing.Standing, error) {
	return s.load(ctx, item, func(context.Context) ([]player.Player, []match.Match, error) {
		return roster, matches, nil
	})
}

type snapshotLoader func(ctx context.Context) ([]player.Player, []match.Match, error)

func (s *StandingService) load(ctx context.Context, item league.League, snapshot snapshotLoader) ([]standing.Standing, error) {
	compute := func(ctx context.Context) (any, error) {
		roster, matches, err := snapshot(ctx)
		if err != nil {
			return nil, err
		}
		out, err := standing.Aggregate(item.Scoring, roster, matches)
		if err != nil {
			if errors.Is(err, match.ErrUnknownPlayer) {
				return nil, fmt.Errorf("%w: league=%s: %w", ErrIntegrity, item.ID, err)
			}
			return nil, fmt.Errorf("aggregate standings: %w", err)
		}
		return out, nil
	}

	if s.cache == nil {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]standing.Standing), nil
	}

	key := standingsKey(item.ID, item.Version)
	v, err := s.cache.GetOrLoad(ctx, key, compute)
	if err != nil {
		return nil, err
	}
	// Older versions can never be requested again.
	s.cache.PruneExcept(ctx, standingsPrefix(item.ID), key)
	items, _ := v.([]standing.Standing)
	return append([]standing.Standing(nil), items...), nil
}

func standingsPrefix(leagueID string) string {
	return "standings:" + leagueID + ":"
}

func standingsKey(leagueID string, version int64) string {
	return fmt.Sprintf("%s%d", standingsPrefix(leagueID), version)
}
