package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the users table. Password holds the encoded hash only.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:320;not null;uniqueIndex:idx_users_email"`
	Password  string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// BeforeCreate assigns an id when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Identity is the minimal view of a user that is bound to a session.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
