package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	leaguemock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/league"
	playermock "github.com/riskibarqy/fulbito-league/internal/mocks/domain/player"
	idgen "github.com/riskibarqy/fulbito-league/internal/platform/id"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_Add(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Martes", 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"})

	added, err := env.player.Add(context.Background(), owner, AddPlayerInput{LeagueID: item.ID, FirstName: "  Bea ", LastName: "Soto"})
	require.NoError(t, err)
	require.Equal(t, "Bea", added.FirstName)
	require.Equal(t, item.ID, added.LeagueID)

	_, err = env.player.Add(context.Background(), owner, AddPlayerInput{LeagueID: item.ID, FirstName: "ana", LastName: "RUIZ"})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, player.ErrDuplicateName)

	_, err = env.player.Add(context.Background(), owner, AddPlayerInput{LeagueID: item.ID, FirstName: "Cris"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.player.Add(context.Background(), stranger, AddPlayerInput{LeagueID: item.ID, FirstName: "Cris", LastName: "Vega"})
	require.ErrorIs(t, err, ErrForbidden)

	roster, err := env.player.ListBySlug(context.Background(), item.Slug)
	require.NoError(t, err)
	require.Len(t, roster, 2)
}

func TestPlayerService_Edit_KeepsOwnName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Miercoles", 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"}, [2]string{"Bea", "Soto"})
	ana := env.playerID(t, item.ID, "Ana")

	edited, err := env.player.Edit(context.Background(), owner, EditPlayerInput{LeagueID: item.ID, PlayerID: ana, FirstName: "ANA", LastName: "Ruiz"})
	require.NoError(t, err)
	require.Equal(t, "ANA", edited.FirstName)

	_, err = env.player.Edit(context.Background(), owner, EditPlayerInput{LeagueID: item.ID, PlayerID: ana, FirstName: "Bea", LastName: "soto"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = env.player.Edit(context.Background(), owner, EditPlayerInput{LeagueID: item.ID, PlayerID: "ghost", FirstName: "X", LastName: "Y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerService_Delete(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Jueves", 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"}, [2]string{"Bea", "Soto"}, [2]string{"Cris", "Vega"})
	ana := env.playerID(t, item.ID, "Ana")
	bea := env.playerID(t, item.ID, "Bea")
	cris := env.playerID(t, item.ID, "Cris")
	env.record(t, item.ID, 1, []RosterEntryInput{existing(ana, 0)}, []RosterEntryInput{existing(bea, 0)}, 1, 0)

	err := env.player.Delete(context.Background(), owner, item.ID, ana)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, player.ErrHasMatches)

	require.NoError(t, env.player.Delete(context.Background(), owner, item.ID, cris))
	err = env.player.Delete(context.Background(), owner, item.ID, cris)
	require.ErrorIs(t, err, ErrNotFound)

	standings, err := env.standings.ListBySlug(context.Background(), item.Slug)
	require.NoError(t, err)
	require.Len(t, standings, 2)
}

func TestPlayerService_SetImage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Viernes", 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"})
	ana := env.playerID(t, item.ID, "Ana")

	tests := []struct {
		name     string
		imageURL string
		want     string
		wantErr  error
	}{
		{name: "https", imageURL: " https://cdn.example.com/ana.png ", want: "https://cdn.example.com/ana.png"},
		{name: "clear", imageURL: "", want: ""},
		{name: "relative", imageURL: "/ana.png", wantErr: ErrInvalidInput},
		{name: "other scheme", imageURL: "ftp://cdn.example.com/ana.png", wantErr: ErrInvalidInput},
		{name: "too long", imageURL: "https://cdn.example.com/" + strings.Repeat("a", maxImageURLLength), wantErr: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			updated, err := env.player.SetImage(context.Background(), owner, SetPlayerImageInput{LeagueID: item.ID, PlayerID: ana, ImageURL: tc.imageURL})
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, updated.ImageURL)
		})
	}
}

func TestPlayerService_Add_RepositoryConflictIsClassified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	item := league.League{ID: "league-1", OwnerUserID: owner.UserID, Name: "Domingo", Slug: "domingo", PlayersPerTeam: 1}

	leagueRepo.On("GetByID", mock.Anything, "league-1").Return(item, true, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "league-1").Return([]player.Player{}, nil).Once()
	// A concurrent writer took the name between the check and the insert.
	playerRepo.On("Create", mock.Anything, mock.MatchedBy(func(p player.Player) bool {
		return p.ID == "player-1" && p.LeagueID == "league-1" && p.FirstName == "Ana"
	})).Return(player.ErrDuplicateName).Once()

	svc := NewPlayerService(leagueRepo, playerRepo, idgen.NewSequence("player-1"))
	svc.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.Add(ctx, owner, AddPlayerInput{LeagueID: "league-1", FirstName: "Ana", LastName: "Ruiz"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestPlayerService_Add_RepositoryFailureIsNotClassified(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	leagueRepo.On("GetByID", mock.Anything, "league-1").
		Return(league.League{ID: "league-1", OwnerUserID: owner.UserID}, true, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "league-1").Return(nil, errors.New("connection reset")).Once()

	svc := NewPlayerService(leagueRepo, playerRepo, idgen.NewSequence("player-1"))
	_, err := svc.Add(context.Background(), owner, AddPlayerInput{LeagueID: "league-1", FirstName: "Ana", LastName: "Ruiz"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrConflict)
	require.NotErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "connection reset")
}
