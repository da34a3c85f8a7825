package tournament

import (
	"fmt"
	"strings"
)

// DefaultName is used when the results sheet has no tournament column
// for a row.
const DefaultName = "Torneo Regular"

// Tournament is one competition in one season. The pair (Name, Season)
// is the natural key; rows are created lazily during ingest and never
// updated afterwards.
type Tournament struct {
	ID     int64
	Name   string
	Season string
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if strings.TrimSpace(t.Season) == "" {
		return fmt.Errorf("tournament season is required")
	}
	return nil
}

// SeasonContains reports whether the tournament's season label contains
// the given year token, e.g. season "2018/2019" contains "2019".
func (t Tournament) SeasonContains(year string) bool {
	year = strings.TrimSpace(year)
	if year == "" {
		return false
	}
	return strings.Contains(t.Season, year)
}
