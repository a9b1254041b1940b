package league

import (
	"errors"
	"testing"
)

func TestLeagueValidate_PlayersPerTeam(t *testing.T) {
	base := League{ID: "lg-1", OwnerUserID: "owner-1", Name: "Jueves", Slug: "jueves", Scoring: DefaultScoringRules()}

	tests := []struct {
		perTeam int
		wantErr bool
	}{
		{perTeam: 0, wantErr: true},
		{perTeam: 1},
		{perTeam: 5},
		{perTeam: MaxPlayersPerTeam},
		{perTeam: MaxPlayersPerTeam + 1, wantErr: true},
	}

	for _, tt := range tests {
		item := base
		item.PlayersPerTeam = tt.perTeam
		err := item.Validate()
		if tt.wantErr != (err != nil) {
			t.Fatalf("playersPerTeam=%d: unexpected err %v", tt.perTeam, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidLeague) {
			t.Fatalf("playersPerTeam=%d: expected ErrInvalidLeague, got %v", tt.perTeam, err)
		}
	}
}
