package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	qb "github.com/riskibarqy/fulbito-league/internal/platform/querybuilder"
)

const (
	pgUniqueViolation     = pq.ErrorCode("23505")
	pgForeignKeyViolation = pq.ErrorCode("23503")

	constraintLeagueSlug = "leagues_slug_key"
	constraintPlayerName = "players_league_name_key"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// violatedConstraint reports the constraint behind a unique violation.
func violatedConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgUniqueViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// bumpLeagueVersion must run inside the transaction that changed league data.
func bumpLeagueVersion(ctx context.Context, tx *sqlx.Tx, leagueID string) error {
	query, args, err := qb.Update("leagues").
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build bump league version query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("bump league version: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected bump league version: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bump league version: league %s not found", leagueID)
	}

	return nil
}
