package player

import "context"

// Repository describes player and position persistence needs from use
// cases. BumpInitial accumulates (rather than overwrites) the carried
// counters, so repeated passes over different historical sheets add up.
type Repository interface {
	FindByFullName(ctx context.Context, name, surname string) (Player, bool, error)
	Insert(ctx context.Context, p Player) (int64, error)
	BumpInitial(ctx context.Context, id int64, delta InitialCounters) error
	List(ctx context.Context) ([]Player, error)
	Get(ctx context.Context, id int64) (Player, error)

	FindPositionByName(ctx context.Context, name string) (Position, bool, error)
	InsertPosition(ctx context.Context, p Position) (int64, error)
}
