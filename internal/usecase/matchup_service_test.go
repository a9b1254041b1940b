package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/stretchr/testify/require"
)

func TestMatchupService_Get(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Cara a cara", 2, league.DefaultScoringRules(),
		[2]string{"Ana", "Ruiz"}, [2]string{"Bea", "Soto"}, [2]string{"Cris", "Vega"}, [2]string{"Dani", "Luna"})
	ana := env.playerID(t, item.ID, "Ana")
	bea := env.playerID(t, item.ID, "Bea")
	cris := env.playerID(t, item.ID, "Cris")
	dani := env.playerID(t, item.ID, "Dani")

	env.record(t, item.ID, 1, []RosterEntryInput{existing(ana, 0), existing(cris, 0)}, []RosterEntryInput{existing(bea, 0), existing(dani, 0)}, 2, 1)
	// Same side: does not count.
	env.record(t, item.ID, 2, []RosterEntryInput{existing(ana, 0), existing(bea, 0)}, []RosterEntryInput{existing(cris, 0), existing(dani, 0)}, 0, 3)
	env.record(t, item.ID, 3, []RosterEntryInput{existing(bea, 0), existing(cris, 0)}, []RosterEntryInput{existing(ana, 0), existing(dani, 0)}, 1, 1)

	report, err := env.matchup.Get(context.Background(), item.Slug, ana, bea)
	require.NoError(t, err)
	require.Equal(t, 2, report.Stats.TotalMatches)
	require.Equal(t, 1, report.Stats.Player1Wins)
	require.Zero(t, report.Stats.Player2Wins)
	require.Equal(t, 1, report.Stats.Draws)
	require.Len(t, report.History, 2)
	require.Equal(t, 3, report.History[0].PlayedAt.Day())
	require.Equal(t, "Victoria de Ana", report.History[1].Result)
}

func TestMatchupService_Get_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createLeague(t, "Rechazos", 1, league.DefaultScoringRules(), [2]string{"Ana", "Ruiz"}, [2]string{"Bea", "Soto"})
	ana := env.playerID(t, item.ID, "Ana")
	bea := env.playerID(t, item.ID, "Bea")

	_, err := env.matchup.Get(context.Background(), item.Slug, ana, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.matchup.Get(context.Background(), item.Slug, ana, ana)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.matchup.Get(context.Background(), item.Slug, ana, "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.matchup.Get(context.Background(), "missing", ana, bea)
	require.ErrorIs(t, err, ErrNotFound)

	report, err := env.matchup.Get(context.Background(), item.Slug, ana, bea)
	require.NoError(t, err)
	require.Zero(t, report.Stats.TotalMatches)
	require.Empty(t, report.History)
}
