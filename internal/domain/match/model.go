package match

import "fmt"

// Condition is the single-character home/away/neutral code on a match.
type Condition string

const (
	ConditionHome    Condition = "L"
	ConditionAway    Condition = "V"
	ConditionNeutral Condition = "N"
)

// NormalizeCondition coerces free-form sheet values to a valid code,
// falling back to home, which is what the source data does.
func NormalizeCondition(value string) Condition {
	switch Condition(value) {
	case ConditionHome, ConditionAway, ConditionNeutral:
		return Condition(value)
	default:
		return ConditionHome
	}
}

// Outcome classifies a finished match from the club's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// Match is one fixture. Date carries either an ISO date or the raw
// round label when the sheet cell was not parseable as a date; GoalsFor
// and GoalsAgainst are nil when the result cell had no score pattern.
type Match struct {
	ID           int64
	Date         string
	TournamentID int64
	OpponentID   int64
	RefereeID    *int64
	CoachID      *int64
	Condition    Condition
	GoalsFor     *int
	GoalsAgainst *int
	ScorerNotes  string
	RedCardNotes string
	PenaltyNotes string
}

func (m Match) Validate() error {
	if m.TournamentID <= 0 {
		return fmt.Errorf("match tournament id is required")
	}
	if m.OpponentID <= 0 {
		return fmt.Errorf("match opponent id is required")
	}
	switch m.Condition {
	case ConditionHome, ConditionAway, ConditionNeutral:
	default:
		return fmt.Errorf("invalid match condition: %q", m.Condition)
	}
	return nil
}

// HasScore reports whether both goal counts were recorded.
func (m Match) HasScore() bool {
	return m.GoalsFor != nil && m.GoalsAgainst != nil
}

// Outcome classifies the match; ok is false when no score was recorded.
// The three categories partition all scored matches: strictly more
// goals for is a win, equality is a draw, anything else a loss.
func (m Match) Outcome() (Outcome, bool) {
	if !m.HasScore() {
		return "", false
	}
	switch {
	case *m.GoalsFor > *m.GoalsAgainst:
		return OutcomeWin, true
	case *m.GoalsFor == *m.GoalsAgainst:
		return OutcomeDraw, true
	default:
		return OutcomeLoss, true
	}
}
