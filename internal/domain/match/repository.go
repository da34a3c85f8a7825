package match

import "context"

// Candidate is a match row joined with the context the column linker
// needs for disambiguation: the opponent's stored name and the season
// label of the match's tournament.
type Candidate struct {
	Match        Match
	OpponentName string
	Season       string
}

// Filter narrows match listings for the query layer. Zero values mean
// "no restriction".
type Filter struct {
	TournamentID int64
	Season       string
	OpponentID   int64
	CoachID      int64
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, m Match) (int64, error)
	Get(ctx context.Context, id int64) (Match, error)
	List(ctx context.Context, f Filter) ([]Match, error)
	// ListCandidatesByOpponents returns, ordered by match id, every
	// match whose opponent is one of the given ids. The stable order
	// backs the linker's deterministic tie-break.
	ListCandidatesByOpponents(ctx context.Context, opponentIDs []int64) ([]Candidate, error)
	UpdateNotes(ctx context.Context, id int64, scorer, redCard, penalty string) error
}
