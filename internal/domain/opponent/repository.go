package opponent

import "context"

// Repository describes opponent persistence needs from use cases.
type Repository interface {
	FindByName(ctx context.Context, name string) (Opponent, bool, error)
	Insert(ctx context.Context, o Opponent) (int64, error)
	List(ctx context.Context) ([]Opponent, error)
	ListAliases(ctx context.Context) ([]Alias, error)
	SeedAliases(ctx context.Context, aliases []Alias) error
}
