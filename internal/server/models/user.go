// Package models holds the records shared between the services and the
// repositories of the server.
package models

import "time"

// UserID is the store-assigned identifier of a user. Its format depends on
// the backing store; callers treat it as opaque.
type UserID string

func (id UserID) String() string { return string(id) }

// User is a registered account. PasswordHash is whatever the configured
// PasswordHasher produced and is never the plaintext.
type User struct {
	ID           UserID
	Name         string
	Email        string
	Gender       string
	PasswordHash []byte
	CreatedAt    time.Time
}
