// Package model holds the gorm models shared by both services
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `gorm:"not null" json:"-"`
	Verified     bool   `gorm:"default:false" json:"is_verified"`
	Active       bool   `gorm:"default:true" json:"is_active"`
	Staff        bool   `gorm:"default:false" json:"is_staff"`

	CreatedAt time.Time  `json:"date_joined"`
	UpdatedAt time.Time  `json:"-"`
	LastLogin *time.Time `json:"last_login"`

	Profile      *UserProfile      `gorm:"foreignKey:UserID" json:"-"`
	Verification *VerificationCode `gorm:"foreignKey:UserID" json:"-"`
}

// FullName falls back to the email when no name was ever set
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}

	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
