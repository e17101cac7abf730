// Package common defines shared sentinel errors and small helpers used across
// the storefront client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Catalog / cart errors.
	ErrorProductNotFound = errors.New("product not found")
	ErrCartEmpty         = errors.New("cart is empty")

	// Directory errors.
	ErrorEmailAlreadyRegistered = errors.New("email already registered")
	ErrorUserNotFound           = errors.New("user not found")
	ErrInvalidImport            = errors.New("invalid users import")

	// Auth errors. Unknown email and wrong password are deliberately the same value.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Input validation errors.
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password must have at least 8 characters, one upper case letter, one lower case letter and one digit")

	// ErrStorageCorrupt marks a persisted record that could not be decoded.
	// It is recovered inside the persistence gateway and never returned to callers.
	ErrStorageCorrupt = errors.New("storage record corrupt")
)
