package league

import (
	"errors"
	"testing"
)

func TestScoringRulesValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   ScoringRules
		wantErr bool
	}{
		{name: "defaults", rules: DefaultScoringRules()},
		{name: "negative loss points", rules: ScoringRules{PointsPerWin: 3, PointsPerLoss: -2}.Normalize()},
		{
			name:    "enabled win streak needs minimum",
			rules:   ScoringRules{IsWinStreakEnabled: true, MinWinStreakToActivate: 0}.Normalize(),
			wantErr: true,
		},
		{
			name:    "enabled loss streak needs minimum",
			rules:   ScoringRules{IsLossStreakEnabled: true, MinLossStreakToActivate: -1, MinWinStreakToActivate: 1},
			wantErr: true,
		},
		{name: "disabled streak minimums are normalized", rules: ScoringRules{}.Normalize()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidScoringRules) {
				t.Fatalf("expected ErrInvalidScoringRules, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[int]Status{
		0:  StatusStarting,
		1:  StatusActive,
		4:  StatusActive,
		5:  StatusEstablished,
		40: StatusEstablished,
	}
	for total, want := range cases {
		if got := StatusFor(total); got != want {
			t.Fatalf("StatusFor(%d) = %s, want %s", total, got, want)
		}
	}
}
