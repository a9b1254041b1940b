package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/user"
)

func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func loadLeagueBySlug(ctx context.Context, repo league.Repository, slug string) (league.League, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return league.League{}, fmt.Errorf("%w: league slug is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetBySlug(ctx, slug)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by slug: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league slug=%s", ErrNotFound, slug)
	}
	return item, nil
}

// loadOwnedLeague loads the league and checks that the caller owns it.
func loadOwnedLeague(ctx context.Context, repo league.Repository, principal user.Principal, leagueID string) (league.League, error) {
	if err := requirePrincipal(principal); err != nil {
		return league.League{}, err
	}
	item, err := loadLeague(ctx, repo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if !item.IsOwnedBy(principal.UserID) {
		return league.League{}, fmt.Errorf("%w: league=%s is not owned by caller", ErrForbidden, item.ID)
	}
	return item, nil
}

func requirePrincipal(principal user.Principal) error {
	if strings.TrimSpace(principal.UserID) == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	return nil
}
