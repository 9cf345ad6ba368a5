package identity

import (
	"context"
)

// UserStore is what an identity provider needs from user storage. R is the
// application's user record.
type UserStore[R any] interface {
	Create(ctx context.Context, user *R) (*R, error)
	Update(ctx context.Context, user *R) (*R, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*R, error)
	FindByName(ctx context.Context, userName string) (*R, error)
	FindByEmail(ctx context.Context, email string) (*R, error)
}

// RoleStore is what an identity provider needs from role storage.
type RoleStore[R any] interface {
	Create(ctx context.Context, role *R) (*R, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*R, error)
	FindByName(ctx context.Context, name string) (*R, error)
}
