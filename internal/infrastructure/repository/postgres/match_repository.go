package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	qb "github.com/riskibarqy/fulbito-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Record stores the match, its participations and any new players in one
// transaction. The league row is locked first so concurrent recordings for
// the same league are serialized.
func (r *MatchRepository) Record(ctx context.Context, item match.Match, newPlayers []player.Player) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx record match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("version").From("leagues").
		Where(qb.Eq("public_id", item.LeagueID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build lock league query: %w", err)
	}
	var version int64
	if err := tx.GetContext(ctx, &version, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("record match: league %s not found", item.LeagueID)
		}
		return match.Match{}, fmt.Errorf("lock league: %w", err)
	}

	if len(newPlayers) > 0 {
		insert := qb.InsertInto("players").Columns(playerColumns...)
		for _, p := range newPlayers {
			insert.Values(playerValues(p)...)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return match.Match{}, fmt.Errorf("build create match players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("create new players: %w", mapConstraintError(err))
		}
	}

	if err := ensureParticipants(ctx, tx, item); err != nil {
		return match.Match{}, err
	}

	matchQuery, matchArgs, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:    item.ID,
		LeagueID:    item.LeagueID,
		PlayedAt:    item.PlayedAt,
		Team1Score:  item.Team1Score,
		Team2Score:  item.Team2Score,
		MVPPlayerID: nullString(item.MVPPlayerID),
		CreatedAt:   item.CreatedAt,
	}, "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build create match query: %w", err)
	}
	var sequence int64
	if err := tx.GetContext(ctx, &sequence, matchQuery, matchArgs...); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	entries := qb.InsertInto("match_players").Columns("match_public_id", "player_public_id", "side", "slot", "goals")
	for _, side := range []match.Side{match.SideTeam1, match.SideTeam2} {
		for slot, e := range item.Entries(side) {
			entries.Values(item.ID, e.PlayerID, int(side), slot, e.Goals)
		}
	}
	entriesQuery, entriesArgs, err := entries.ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build create participations query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, entriesQuery, entriesArgs...); err != nil {
		return match.Match{}, fmt.Errorf("create participations: %w", err)
	}

	if err := bumpLeagueVersion(ctx, tx, item.LeagueID); err != nil {
		return match.Match{}, err
	}
	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit record match tx: %w", err)
	}

	stored := match.Clone(item)
	stored.Sequence = sequence
	return stored, nil
}

func ensureParticipants(ctx context.Context, tx *sqlx.Tx, item match.Match) error {
	ids := item.ParticipantIDs()
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}

	query, args, err := qb.Select("public_id").From("players").
		Where(qb.Eq("league_public_id", item.LeagueID), qb.In("public_id", values)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build participants query: %w", err)
	}
	var found []string
	if err := tx.SelectContext(ctx, &found, query, args...); err != nil {
		return fmt.Errorf("select participants: %w", err)
	}

	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %s", match.ErrUnknownPlayer, id)
		}
	}
	return nil
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	entriesQuery, entriesArgs, err := qb.Select("match_public_id", "player_public_id", "side", "slot", "goals").
		From("match_players").
		Where(qb.Expr("match_public_id IN (SELECT public_id FROM matches WHERE league_public_id = ?)", leagueID)).
		OrderBy("match_public_id", "side", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participations query: %w", err)
	}
	var entryRows []matchPlayerTableModel
	if err := r.db.SelectContext(ctx, &entryRows, entriesQuery, entriesArgs...); err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	byMatch := make(map[string][]matchPlayerTableModel, len(rows))
	for _, e := range entryRows {
		byMatch[e.MatchID] = append(byMatch[e.MatchID], e)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m := match.Match{
			ID:          row.PublicID,
			LeagueID:    row.LeagueID,
			Sequence:    row.ID,
			PlayedAt:    row.PlayedAt.In(time.UTC),
			Team1Score:  row.Team1Score,
			Team2Score:  row.Team2Score,
			MVPPlayerID: row.MVPPlayerID.String,
			CreatedAt:   row.CreatedAt,
		}
		for _, e := range byMatch[row.PublicID] {
			entry := match.Entry{PlayerID: e.PlayerID, Goals: e.Goals}
			if match.Side(e.Side) == match.SideTeam1 {
				m.Team1 = append(m.Team1, entry)
			} else {
				m.Team2 = append(m.Team2, entry)
			}
		}
		out = append(out, m)
	}

	match.SortChronological(out)
	return out, nil
}
