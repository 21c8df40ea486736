// Package model defines the domain records persisted by the store:
// User, Project and Contact.
package model

import "time"

// User is a site account with dashboard access. Passwords are stored
// as argon2id hashes, never in plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}
