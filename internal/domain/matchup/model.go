package matchup

import (
	"time"

	"github.com/riskibarqy/fulbito-league/internal/domain/player"
)

const (
	ResultDraw      = "Empate"
	resultWinPrefix = "Victoria de "
)

// Stats is the head-to-head tally between two players.
type Stats struct {
	Player1Wins  int
	Player2Wins  int
	Draws        int
	TotalMatches int
	Summary      string
}

// PlayerDetail is one side of a head-to-head history entry.
type PlayerDetail struct {
	Goals            int
	WasInWinningTeam bool
}

// HistoryEntry is one match where both players faced each other.
type HistoryEntry struct {
	MatchID    string
	PlayedAt   time.Time
	Team1Score int
	Team2Score int
	Result     string
	Player1    PlayerDetail
	Player2    PlayerDetail
}

// Report is the full head-to-head view. History is most recent first.
type Report struct {
	Player1 player.Player
	Player2 player.Player
	Stats   Stats
	History []HistoryEntry
}
