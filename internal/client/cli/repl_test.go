package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) status() string { return " (s)" }

func (f *fakeExec) commands() []command {
	return []command{
		{name: "ping", usage: "ping [args]", run: func(_ context.Context, args []string) error {
			f.calls = append(f.calls, strings.TrimSpace("ping "+strings.Join(args, " ")))
			return nil
		}},
		{name: "boom", usage: "boom", run: func(context.Context, []string) error {
			f.calls = append(f.calls, "boom")
			return fmt.Errorf("wrapped: %w", common.ErrorProductNotFound)
		}},
	}
}

func TestRunREPL_DispatchAndQuit(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, rdr("help\nping a b\n\n  \nboom\nfoobar\nexit\nping\n"), &out)

	require.Equal(t, []string{"ping a b", "boom"}, exec.calls)
	got := out.String()
	assert.Contains(t, got, "storefront (s)> ")
	assert.Contains(t, got, "Available commands:")
	assert.Contains(t, got, "ping [args]")
	assert.Contains(t, got, "Product not found.")
	assert.Contains(t, got, "Unknown command: foobar")
	assert.Contains(t, got, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, rdr("ping\nping last"), &out)
	require.Equal(t, []string{"ping", "ping last"}, exec.calls)
	assert.NotContains(t, out.String(), "Bye!")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{usageError("add <product-id>"), "Usage: add <product-id>"},
		{common.ErrorProductNotFound, "Product not found."},
		{common.ErrorEmailAlreadyRegistered, "This email is already registered. Try another email or log in."},
		{common.ErrorUserNotFound, "User not found."},
		{common.ErrorInvalidCredentials, "Invalid credentials. Please try again."},
		{common.ErrCartEmpty, "Your cart is empty."},
		{fmt.Errorf("%w: dup", common.ErrInvalidImport), "Import rejected: invalid users import: dup"},
		{common.ErrInvalidEmail, "Invalid input: invalid email format"},
		{errNotLoggedIn, "Please log in first."},
		{errors.New("disk full"), "Error: disk full"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err))
	}
}
