package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	qb "github.com/riskibarqy/fulbito-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League, roster []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create league: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("leagues", leagueInsertFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create league: %w", mapConstraintError(err))
	}

	if len(roster) > 0 {
		insert := qb.InsertInto("players").Columns(playerColumns...)
		for _, p := range roster {
			insert.Values(playerValues(p)...)
		}
		rosterQuery, rosterArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build create roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, rosterQuery, rosterArgs...); err != nil {
			return fmt.Errorf("create roster: %w", mapConstraintError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league tx: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetBySlug(ctx context.Context, slug string) (league.League, bool, error) {
	return r.getOne(ctx, "slug", qb.Eq("slug", slug))
}

func (r *LeagueRepository) getOne(ctx context.Context, by string, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").Where(cond).ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by %s query: %w", by, err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by %s: %w", by, err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("leagues").Where(qb.Eq("slug", slug)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build slug exists query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return count > 0, nil
}

func (r *LeagueRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("owner_user_id", ownerUserID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by owner query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) list(ctx context.Context, query string, args []any) ([]league.League, error) {
	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

// mapConstraintError translates the unique constraints the domain cares
// about into domain errors and passes everything else through.
func mapConstraintError(err error) error {
	constraint, ok := violatedConstraint(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintLeagueSlug:
		return fmt.Errorf("%w: %v", league.ErrSlugTaken, err)
	case constraintPlayerName:
		return fmt.Errorf("%w: %v", player.ErrDuplicateName, err)
	default:
		return err
	}
}
