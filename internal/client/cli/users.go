package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/filex"
)

// User management commands need a signed-in user.
func (a *App) requireLogin() error {
	if _, ok := a.session.Current(); !ok {
		return errNotLoggedIn
	}
	return nil
}

func userIDArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", usageError(usage)
	}
	return args[0], nil
}

func (a *App) ListUsers(_ context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	users := a.users.List()
	if len(users) == 0 {
		a.println("No registered users.")
		return nil
	}
	for _, u := range users {
		state := "active"
		if !u.IsActive {
			state = "inactive"
		}
		last := "never"
		if u.LastLogin != nil {
			last = u.LastLogin.Format(time.DateTime)
		}
		a.printf("%s  %-24s %-28s %-8s registered %s, last login %s\n",
			u.ID, u.FullName(), u.Email, state, u.DateRegistered.Format(time.DateOnly), last)
	}
	return nil
}

func (a *App) Stats(_ context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s := a.users.Stats(time.Now())
	a.printf("Users: %d total, %d active, %d inactive, %d recent\n", s.Total, s.Active, s.Inactive, s.Recent)
	return nil
}

func (a *App) ActivateUser(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := userIDArg(args, "activate <user-id>")
	if err != nil {
		return err
	}
	if err := a.users.Activate(ctx, id); err != nil {
		return err
	}
	a.println("User activated.")
	return nil
}

func (a *App) DeactivateUser(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := userIDArg(args, "deactivate <user-id>")
	if err != nil {
		return err
	}
	if err := a.users.Deactivate(ctx, id); err != nil {
		return err
	}
	a.println("User deactivated.")
	return a.dropStaleSession(ctx)
}

// dropStaleSession logs out when the signed-in account no longer exists or
// is no longer active.
func (a *App) dropStaleSession(ctx context.Context) error {
	if !a.session.Stale() {
		return nil
	}
	return a.Logout(ctx, nil)
}

// DeleteUser removes an account. Deleting the signed-in account also logs out.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := userIDArg(args, "delete <user-id>")
	if err != nil {
		return err
	}
	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	a.println("User deleted.")
	return a.dropStaleSession(ctx)
}

// ExportUsers writes the directory as JSON to the named file, or to the
// terminal when no file is given.
func (a *App) ExportUsers(_ context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	switch len(args) {
	case 0:
		return a.users.Export(a.out)
	case 1:
	default:
		return usageError("export [file]")
	}

	if err := filex.EnsureParentDir(args[0]); err != nil {
		return err
	}
	f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	if err := a.users.Export(f); err != nil {
		return err
	}
	a.printf("Exported %d users to %s\n", len(a.users.List()), args[0])
	return nil
}

// ImportUsers replaces the directory with the users in the named file.
func (a *App) ImportUsers(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("import <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	n, err := a.users.Import(ctx, f)
	if err != nil {
		return err
	}
	a.printf("Imported %d users.\n", n)
	return a.dropStaleSession(ctx)
}
