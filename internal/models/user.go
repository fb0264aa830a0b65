package models

import "time"

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the display name shown on the user page.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
