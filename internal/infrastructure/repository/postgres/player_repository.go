package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	qb "github.com/riskibarqy/fulbito-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("name_key", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	return r.inLeagueTx(ctx, item.LeagueID, "create player", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertInto("players").Columns(playerColumns...).Values(playerValues(item)...).ToSQL()
		if err != nil {
			return fmt.Errorf("build create player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return mapConstraintError(err)
		}
		return nil
	})
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	return r.inLeagueTx(ctx, item.LeagueID, "update player", func(tx *sqlx.Tx) error {
		query, args, err := qb.Update("players").
			Set("first_name", item.FirstName).
			Set("last_name", item.LastName).
			Set("name_key", item.NameKey()).
			Set("image_url", nullString(item.ImageURL)).
			Set("updated_at", item.UpdatedAt).
			Where(
				qb.Eq("league_public_id", item.LeagueID),
				qb.Eq("public_id", item.ID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update player query: %w", err)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return mapConstraintError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("player %s not found", item.ID)
		}
		return nil
	})
}

func (r *PlayerRepository) Delete(ctx context.Context, leagueID, playerID string) error {
	return r.inLeagueTx(ctx, leagueID, "delete player", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("players").
			Where(
				qb.Eq("league_public_id", leagueID),
				qb.Eq("public_id", playerID),
				qb.NotExists(qb.Select("1").From("match_players").Where(qb.Expr("player_public_id = ?", playerID))),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete player query: %w", err)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			// A match committed between the guard and the delete still trips the FK.
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: %s", player.ErrHasMatches, playerID)
			}
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected > 0 {
			return nil
		}

		existsQuery, existsArgs, err := qb.Select("COUNT(1)").From("players").
			Where(qb.Eq("league_public_id", leagueID), qb.Eq("public_id", playerID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build player exists query: %w", err)
		}
		var count int
		if err := tx.GetContext(ctx, &count, existsQuery, existsArgs...); err != nil {
			return fmt.Errorf("check player exists: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", player.ErrHasMatches, playerID)
		}
		return fmt.Errorf("player %s not found", playerID)
	})
}

// inLeagueTx runs fn and bumps the league version in one transaction.
func (r *PlayerRepository) inLeagueTx(ctx context.Context, leagueID, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := bumpLeagueVersion(ctx, tx, leagueID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", op, err)
	}

	return nil
}
