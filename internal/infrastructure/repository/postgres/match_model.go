package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	LeagueID    string         `db:"league_public_id"`
	PlayedAt    time.Time      `db:"played_at"`
	Team1Score  int            `db:"team1_score"`
	Team2Score  int            `db:"team2_score"`
	MVPPlayerID sql.NullString `db:"mvp_player_public_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

type matchInsertModel struct {
	PublicID    string         `db:"public_id"`
	LeagueID    string         `db:"league_public_id"`
	PlayedAt    time.Time      `db:"played_at"`
	Team1Score  int            `db:"team1_score"`
	Team2Score  int            `db:"team2_score"`
	MVPPlayerID sql.NullString `db:"mvp_player_public_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

type matchPlayerTableModel struct {
	MatchID  string `db:"match_public_id"`
	PlayerID string `db:"player_public_id"`
	Side     int    `db:"side"`
	Slot     int    `db:"slot"`
	Goals    int    `db:"goals"`
}
