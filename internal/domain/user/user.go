package user

import (
	"time"
)

type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Username       string  `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email          *string `gorm:"uniqueIndex;column:email" json:"email,omitempty"`
	Disabled       bool    `gorm:"not null;default:false;column:disabled" json:"disabled"`
	HashedPassword string  `gorm:"not null;column:hashed_password" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// EmailValue returns the email or "" when none was given at registration.
func (u *User) EmailValue() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}
