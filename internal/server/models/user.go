// Package models defines server-side domain types.
package models

import "time"

// User is a stored user record. PasswordHash holds the PHC-encoded argon2id
// hash, never the plaintext, and is never serialized into responses.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// UserInfo is the externally visible projection of a User.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Info returns the record without its credential material.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
