package models

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9@$!%*?&]{8,}$`)
)

// ValidateEmail applies the sign-up form's email rule.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return common.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword requires at least 8 characters from the allowed set with
// one lower case letter, one upper case letter and one digit.
func ValidatePassword(password string) error {
	if !passwordRe.MatchString(password) ||
		!strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") ||
		!strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(password, "0123456789") {
		return common.ErrWeakPassword
	}
	return nil
}
