package opponent

import (
	"fmt"
	"strings"

	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// Opponent is a rival club. Names are stored already normalized
// (trimmed, upper-cased, diacritics stripped) and are unique; the same
// normalization is applied at lookup time so repeated ingest runs
// converge on a single row per club.
type Opponent struct {
	ID   int64
	Name string
}

func (o Opponent) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("opponent name is required")
	}
	return nil
}

// Alias maps a known sheet misspelling or abbreviation to the canonical
// club name. Aliases are configuration rows, not code: corrections land
// in the table without touching parser logic.
type Alias struct {
	From string
	To   string
}

// AliasSet resolves raw opponent text through the alias table before
// normalization-based matching. Keys are compared on normalized form.
type AliasSet map[string]string

// NewAliasSet builds a lookup from alias rows, normalizing both sides.
func NewAliasSet(aliases []Alias) AliasSet {
	out := make(AliasSet, len(aliases))
	for _, a := range aliases {
		from := normalize.Name(a.From)
		to := normalize.Name(a.To)
		if from == "" || to == "" {
			continue
		}
		out[from] = to
	}
	return out
}

// Resolve returns the canonical name for raw opponent text: the alias
// target when one is registered, the normalized input otherwise.
func (s AliasSet) Resolve(raw string) string {
	name := normalize.Name(raw)
	if canonical, ok := s[name]; ok {
		return canonical
	}
	return name
}

// DefaultAliases is the hand-maintained seed for the alias table,
// carried over from the spreadsheet's known spelling variants.
func DefaultAliases() []Alias {
	return []Alias{
		{From: "CTRAL. BALLESTER", To: "CENTRAL BALLESTER"},
		{From: "CTRO ESPAÑOL", To: "CENTRO ESPAÑOL"},
		{From: "JUV. UNIDA", To: "JUVENTUD UNIDA"},
		{From: "ARG ROSARIO", To: "ARGENTINO ROSARIO"},
	}
}
