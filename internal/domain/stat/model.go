package stat

import "fmt"

// Stat is one player's line in one match, unique by (match, player).
// A row exists only when the player actually appeared (minutes > 0) or
// when a goal or disciplinary record warrants one; absence from a match
// is the absence of a row, never a zero row.
type Stat struct {
	MatchID  int64
	PlayerID int64
	Minutes  int
	Starter  bool
	Goals    int
	Conceded int
	Yellows  int
	Reds     int
}

func (s Stat) Validate() error {
	if s.MatchID <= 0 {
		return fmt.Errorf("stat match id is required")
	}
	if s.PlayerID <= 0 {
		return fmt.Errorf("stat player id is required")
	}
	if s.Minutes < 0 {
		return fmt.Errorf("stat minutes cannot be negative")
	}
	if s.Goals < 0 || s.Conceded < 0 || s.Yellows < 0 || s.Reds < 0 {
		return fmt.Errorf("stat counters cannot be negative")
	}
	return nil
}
