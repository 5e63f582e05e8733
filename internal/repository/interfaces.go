package repository

import (
	"context"

	"credential-auth/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}
