package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

var playerColumns = []string{
	"public_id", "league_public_id", "first_name", "last_name", "name_key", "image_url", "created_at", "updated_at",
}

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	LeagueID  string         `db:"league_public_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	NameKey   string         `db:"name_key"`
	ImageURL  sql.NullString `db:"image_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func playerValues(p player.Player) []any {
	return []any{p.ID, p.LeagueID, p.FirstName, p.LastName, p.NameKey(), nullString(p.ImageURL), p.CreatedAt, p.UpdatedAt}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		ImageURL:  row.ImageURL.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
