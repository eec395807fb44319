package models

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeDriver UserType = "driver"
)

// ParseUserType accepts the labels the sign-up form offers. "owner" is the
// form's name for an admin account.
func ParseUserType(s string) (UserType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "owner":
		return UserTypeAdmin, true
	case "driver":
		return UserTypeDriver, true
	default:
		return "", false
	}
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	UserType  UserType  `json:"userType" gorm:"not null;size:16"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the public view of a user.
type Profile struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	UserType UserType `json:"userType"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		UserType: u.UserType,
	}
}
