package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	FindByNameAndSeason(ctx context.Context, name, season string) (Tournament, bool, error)
	Insert(ctx context.Context, t Tournament) (int64, error)
	List(ctx context.Context) ([]Tournament, error)
}
