package player

import (
	"fmt"
	"strings"
)

// DefaultPosition labels players whose roster sheet carries no position
// column.
const DefaultPosition = "DESCONOCIDO"

// Position is a playing position dimension row, unique by name.
type Position struct {
	ID   int64
	Name string
}

// InitialCounters are the cumulative pre-digitization totals carried
// over from the club's paper era. They accumulate across ingest passes
// that touch different historical sheets and are added to the sum of
// per-match stat rows whenever a player total is reported.
type InitialCounters struct {
	Games    int
	Goals    int
	Conceded int
	Assists  int
	Yellows  int
	Reds     int
	Starts   int
	SubApps  int
}

func (c InitialCounters) Add(other InitialCounters) InitialCounters {
	return InitialCounters{
		Games:    c.Games + other.Games,
		Goals:    c.Goals + other.Goals,
		Conceded: c.Conceded + other.Conceded,
		Assists:  c.Assists + other.Assists,
		Yellows:  c.Yellows + other.Yellows,
		Reds:     c.Reds + other.Reds,
		Starts:   c.Starts + other.Starts,
		SubApps:  c.SubApps + other.SubApps,
	}
}

// Player is a squad member. (Name, Surname) is the natural key;
// SheetRowRef additionally records the source spreadsheet row
// identifier introduced by the latest sheet generation.
type Player struct {
	ID          int64
	Name        string
	Surname     string
	PositionID  int64
	SheetRowRef string
	Initial     InitialCounters
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Surname) == "" {
		return fmt.Errorf("player surname is required")
	}
	return nil
}

// FullName is the display form used by the match log and reports.
func (p Player) FullName() string {
	return strings.TrimSpace(p.Surname + " " + p.Name)
}

// Totals are a player's live statistics: initial counters plus the sum
// of all associated stat rows.
type Totals struct {
	Games    int
	Starts   int
	Minutes  int
	Goals    int
	Conceded int
	Assists  int
	Yellows  int
	Reds     int
}

// ApplyInitial folds the carried-over counters into totals computed
// from stat rows alone.
func (t Totals) ApplyInitial(c InitialCounters) Totals {
	t.Games += c.Games
	t.Starts += c.Starts
	t.Goals += c.Goals
	t.Conceded += c.Conceded
	t.Assists += c.Assists
	t.Yellows += c.Yellows
	t.Reds += c.Reds
	return t
}
