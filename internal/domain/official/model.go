// Package official covers the two name-keyed match officials: referees
// and coaches. Both are optional on a match record and share the same
// resolve-or-create lifecycle.
package official

import "fmt"

type Kind string

const (
	KindReferee Kind = "referee"
	KindCoach   Kind = "coach"
)

// Official is a referee or coach row. Names are stored normalized and
// are unique per kind.
type Official struct {
	ID   int64
	Kind Kind
	Name string
}

func (o Official) Validate() error {
	if o.Kind != KindReferee && o.Kind != KindCoach {
		return fmt.Errorf("invalid official kind: %s", o.Kind)
	}
	if o.Name == "" {
		return fmt.Errorf("official name is required")
	}
	return nil
}
