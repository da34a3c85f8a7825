package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (User, bool, error)
	Insert(ctx context.Context, u User) (int64, error)
}
