package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	"github.com/riskibarqy/fulbito-league/internal/domain/user"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
)

const maxImageURLLength = 2048

type AddPlayerInput struct {
	LeagueID  string
	FirstName string
	LastName  string
}

type EditPlayerInput struct {
	LeagueID  string
	PlayerID  string
	FirstName string
	LastName  string
}

type SetPlayerImageInput struct {
	LeagueID string
	PlayerID string
	// ImageURL clears the image when empty.
	ImageURL string
}

type PlayerService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewPlayerService(leagueRepo league.Repository, playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *PlayerService) ListBySlug(ctx context.Context, slug string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListBySlug", slugAttr(slug))
	defer span.End()

	item, err := loadLeagueBySlug(ctx, s.leagueRepo, slug)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Add(ctx context.Context, principal user.Principal, input AddPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Add", leagueAttr(input.LeagueID))
	defer span.End()

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := player.ValidateName(input.FirstName, input.LastName); err != nil {
		return player.Player{}, classifyDomainError("add player", err)
	}

	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, input.LeagueID)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.ensureNameAvailable(ctx, item.ID, input.FirstName, input.LastName, ""); err != nil {
		return player.Player{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	now := s.now().UTC()
	p := player.Player{
		ID:        playerID,
		LeagueID:  item.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, classifyDomainError("create player", err)
	}
	return p, nil
}

func (s *PlayerService) Edit(ctx context.Context, principal user.Principal, input EditPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Edit", leagueAttr(input.LeagueID))
	defer span.End()

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := player.ValidateName(input.FirstName, input.LastName); err != nil {
		return player.Player{}, classifyDomainError("edit player", err)
	}

	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, input.LeagueID)
	if err != nil {
		return player.Player{}, err
	}
	p, err := s.loadPlayer(ctx, item.ID, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.ensureNameAvailable(ctx, item.ID, input.FirstName, input.LastName, p.ID); err != nil {
		return player.Player{}, err
	}

	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.UpdatedAt = s.now().UTC()
	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, classifyDomainError("update player", err)
	}
	return p, nil
}

func (s *PlayerService) Delete(ctx context.Context, principal user.Principal, leagueID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete", leagueAttr(leagueID))
	defer span.End()

	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, leagueID)
	if err != nil {
		return err
	}
	p, err := s.loadPlayer(ctx, item.ID, playerID)
	if err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, item.ID, p.ID); err != nil {
		return classifyDomainError("delete player", err)
	}
	return nil
}

func (s *PlayerService) SetImage(ctx context.Context, principal user.Principal, input SetPlayerImageInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SetImage", leagueAttr(input.LeagueID))
	defer span.End()

	imageURL, err := normalizeImageURL(input.ImageURL)
	if err != nil {
		return player.Player{}, err
	}
	item, err := loadOwnedLeague(ctx, s.leagueRepo, principal, input.LeagueID)
	if err != nil {
		return player.Player{}, err
	}
	p, err := s.loadPlayer(ctx, item.ID, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	p.ImageURL = imageURL
	p.UpdatedAt = s.now().UTC()
	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, classifyDomainError("update player image", err)
	}
	return p, nil
}

func (s *PlayerService) loadPlayer(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, leagueID, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

// ensureNameAvailable rejects a name already used in the league. exceptID
// lets a player keep its own name.
func (s *PlayerService) ensureNameAvailable(ctx context.Context, leagueID, firstName, lastName, exceptID string) error {
	roster, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	key := player.NameKey(firstName, lastName)
	for _, p := range roster {
		if p.ID != exceptID && p.NameKey() == key {
			return fmt.Errorf("%w: %w: %s %s", ErrConflict, player.ErrDuplicateName, firstName, lastName)
		}
	}
	return nil
}

func normalizeImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if len(raw) > maxImageURLLength {
		return "", fmt.Errorf("%w: image url must be at most %d characters", ErrInvalidInput, maxImageURLLength)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: image url is malformed", ErrInvalidInput)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: image url must be an absolute http(s) url", ErrInvalidInput)
	}
	return parsed.String(), nil
}
