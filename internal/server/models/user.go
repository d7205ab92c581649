// Package models defines server-side data models persisted in the metadata
// store and returned by services.
package models

// User is a registered account. PasswordHash is hex(SHA-512(password+salt)).
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	PasswordSalt string
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	UserID   string
	UserName string
	Token    string
}
