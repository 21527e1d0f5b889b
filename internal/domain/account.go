package domain

import "time"

// Account is a sign-up directory entry used for portal logins.
type Account struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
