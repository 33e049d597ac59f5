// Package domain defines the user entity shared by the identity, book, and admin layers.
package domain

import "time"

// User is an account holder. PasswordHash and verification state are never
// serialized to API responses.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Name                string     `json:"name"`
	IsVerified          bool       `json:"is_verified"`
	VerificationCode    string     `json:"-"`
	VerificationExpires *time.Time `json:"-"`
	IsAdmin             bool       `json:"is_admin"`
	CreatedAt           time.Time  `json:"-"`
	UpdatedAt           time.Time  `json:"-"`
}
