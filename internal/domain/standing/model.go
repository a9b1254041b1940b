package standing

// Standing is the derived record of one player in one league.
type Standing struct {
	Position          int
	PlayerID          string
	FirstName         string
	LastName          string
	ImageURL          string
	TotalPoints       int
	MatchesPlayed     int
	MatchesWon        int
	MatchesDrawn      int
	MatchesLost       int
	GoalsFor          int
	CurrentWinStreak  int
	CurrentLossStreak int
	// Rates are percentages in the 0-100 range.
	AttendanceRate float64
	WinRate        float64
	DrawRate       float64
	LossRate       float64
}

func (s Standing) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
