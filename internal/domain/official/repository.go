package official

import "context"

// Repository describes referee/coach persistence needs from use cases.
type Repository interface {
	FindByName(ctx context.Context, kind Kind, name string) (Official, bool, error)
	Insert(ctx context.Context, o Official) (int64, error)
	List(ctx context.Context, kind Kind) ([]Official, error)
}
