package models

import (
	"strings"
	"time"
)

// User is a registered account. Email is stored lowercased and is unique
// across the directory. PasswordDigest holds an argon2id PHC string; the raw
// password is never kept.
type User struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	PasswordDigest string     `json:"passwordDigest"`
	DateRegistered time.Time  `json:"dateRegistered"`
	IsActive       bool       `json:"isActive"`
	LastLogin      *time.Time `json:"lastLogin"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserUpdate lists the fields Update may change. Nil fields are left as is.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	IsActive  *bool
}

// UserStats summarises the directory. Recent counts users registered inside
// the configured window before the time of the call.
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Recent   int `json:"recent"`
}

// NormalizeEmail is the form emails are compared and stored in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
