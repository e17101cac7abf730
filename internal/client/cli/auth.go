package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for the sign-up form fields, applies the form rules and
// creates the account. It does not log the new user in.
func (a *App) Register(ctx context.Context, _ []string) error {
	first, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if first == "" || last == "" {
		return errors.New("all fields are required")
	}
	if err := models.ValidateEmail(email); err != nil {
		return err
	}

	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}
	if err := models.ValidatePassword(string(password)); err != nil {
		return err
	}

	u, err := a.users.Register(ctx, first, last, email, password)
	if err != nil {
		return err
	}
	a.printf("Account created. Welcome %s! You can log in now.\n", u.FirstName)
	return nil
}

// Login prompts for credentials and whether to remember the session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		return errors.New("all fields are required")
	}

	remember, err := GetYesNo(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	s, err := a.session.Login(ctx, email, password, remember)
	if err != nil {
		return err
	}
	a.printf("Welcome %s! You are logged in.\n", s.FirstName)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) Whoami(_ context.Context, _ []string) error {
	s, ok := a.session.Current()
	if !ok {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s <%s> id=%s\n", s.Name, s.Email, s.UserID)
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	s, ok := a.session.Current()
	if !ok {
		return errNotLoggedIn
	}

	oldPw, err := GetPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	if err := models.ValidatePassword(string(newPw)); err != nil {
		return err
	}
	if err := a.users.ChangePassword(ctx, s.UserID, oldPw, newPw); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}
