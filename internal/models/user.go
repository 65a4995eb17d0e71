// Package models contains the application's data models and error types.
package models

import (
	"time"
)

// User represents an account holder. The username is the public handle
// (always prefixed with "@") and never changes after sign-up; email can be
// updated but stays unique. The bcrypt hash in Password is never serialized.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;size:30;not null" json:"username"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Bio       string `gorm:"size:520" json:"bio"`
	Password  string `gorm:"not null" json:"-"`
	// IsActive gates login without destroying the account's posts and edges.
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
