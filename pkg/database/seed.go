package database

import (
	"context"
	"errors"
	"fmt"

	"credential-auth/internal/domain/user"
	"credential-auth/internal/validation"
	auth_errors "credential-auth/pkg/errors"
)

// SeedUser describes a development account.
type SeedUser struct {
	Email    string
	Username string
	Password string
}

// UserStore is the subset of the user repository seeding needs.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

// Hasher turns a plaintext password into a stored hash.
type Hasher interface {
	Hash(password string) (string, error)
}

// Seed creates the given user unless one with the same email exists.
// The user must pass the same rules as a signup. It reports whether a row
// was inserted.
func Seed(ctx context.Context, store UserStore, hasher Hasher, seed SeedUser) (bool, error) {
	checked := validation.ValidateSignup(validation.SignupInput{
		Email:    seed.Email,
		Password: seed.Password,
		Username: seed.Username,
	})
	if err := checked.Err(); err != nil {
		return false, fmt.Errorf("seed user: %w", err)
	}

	if _, err := store.GetUserByEmail(ctx, seed.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, auth_errors.ErrNotFound) {
		return false, fmt.Errorf("seed user lookup: %w", err)
	}

	hashed, err := hasher.Hash(seed.Password)
	if err != nil {
		return false, fmt.Errorf("seed user hash: %w", err)
	}

	err = store.Create(ctx, &user.User{
		Email:    seed.Email,
		Username: seed.Username,
		Password: hashed,
	})
	if errors.Is(err, auth_errors.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed user create: %w", err)
	}
	return true, nil
}
