package repository

import (
	"context"
	"errors"

	"credential-auth/internal/domain/user"
	auth_errors "credential-auth/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts u. A duplicate email maps to ErrAlreadyExists, which also
// covers two signups racing past the existence check.
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return auth_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, auth_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
