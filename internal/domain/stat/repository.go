package stat

import "context"

// MatchLine is a stat row joined with its match context for per-player
// match logs.
type MatchLine struct {
	Stat       Stat
	Date       string
	Opponent   string
	Tournament string
}

// Repository describes stat persistence needs from use cases.
type Repository interface {
	// InsertBatch writes one roster sheet's rows in a single statement
	// inside one transaction; a failure rolls the whole sheet back.
	InsertBatch(ctx context.Context, stats []Stat) error
	Get(ctx context.Context, matchID, playerID int64) (Stat, bool, error)
	AddGoals(ctx context.Context, matchID, playerID int64, goals int) error
	Upsert(ctx context.Context, s Stat) error
	ListByPlayer(ctx context.Context, playerID int64) ([]MatchLine, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Stat, error)
}
