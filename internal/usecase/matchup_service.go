package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/matchup"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

type MatchupService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewMatchupService(leagueRepo league.Repository, playerRepo player.Repository, matchRepo match.Repository) *MatchupService {
	return &MatchupService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (s *MatchupService) Get(ctx context.Context, slug, player1ID, player2ID string) (matchup.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.Get", slugAttr(slug))
	defer span.End()

	player1ID = strings.TrimSpace(player1ID)
	player2ID = strings.TrimSpace(player2ID)
	if player1ID == "" || player2ID == "" {
		return matchup.Report{}, fmt.Errorf("%w: player1Id and player2Id are required", ErrInvalidInput)
	}
	if player1ID == player2ID {
		return matchup.Report{}, fmt.Errorf("%w: a player cannot be compared with itself", ErrInvalidInput)
	}

	item, err := loadLeagueBySlug(ctx, s.leagueRepo, slug)
	if err != nil {
		return matchup.Report{}, err
	}
	p1, err := s.loadPlayer(ctx, item.ID, player1ID)
	if err != nil {
		return matchup.Report{}, err
	}
	p2, err := s.loadPlayer(ctx, item.ID, player2ID)
	if err != nil {
		return matchup.Report{}, err
	}

	matches, err := s.matchRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return matchup.Report{}, fmt.Errorf("list matches: %w", err)
	}
	return matchup.Aggregate(p1, p2, matches), nil
}

func (s *MatchupService) loadPlayer(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	p, exists, err := s.playerRepo.GetByID(ctx, leagueID, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}
