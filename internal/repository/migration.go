package repository

import (
	"fmt"

	"credential-auth/internal/domain/user"

	"gorm.io/gorm"
)

// InitSchema creates the users table and its unique email index.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
