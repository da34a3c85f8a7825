package match

import "testing"

func intPtr(v int) *int { return &v }

func TestOutcome(t *testing.T) {
	cases := []struct {
		name    string
		gf, ga  *int
		want    Outcome
		scored  bool
	}{
		{"win", intPtr(3), intPtr(1), OutcomeWin, true},
		{"draw", intPtr(2), intPtr(2), OutcomeDraw, true},
		{"loss", intPtr(0), intPtr(1), OutcomeLoss, true},
		{"zero-zero draw", intPtr(0), intPtr(0), OutcomeDraw, true},
		{"no score", nil, nil, "", false},
		{"half score", intPtr(1), nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Match{GoalsFor: tc.gf, GoalsAgainst: tc.ga}
			got, ok := m.Outcome()
			if ok != tc.scored {
				t.Fatalf("scored: got %v want %v", ok, tc.scored)
			}
			if got != tc.want {
				t.Fatalf("outcome: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeCondition(t *testing.T) {
	cases := map[string]Condition{
		"L":  ConditionHome,
		"V":  ConditionAway,
		"N":  ConditionNeutral,
		"":   ConditionHome,
		"X":  ConditionHome,
		"LV": ConditionHome,
	}
	for in, want := range cases {
		if got := NormalizeCondition(in); got != want {
			t.Fatalf("NormalizeCondition(%q): got %q want %q", in, got, want)
		}
	}
}
