package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// command is one REPL verb.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

// execIface is what the REPL needs from the application. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	status() string
	commands() []command
}

// usageError is returned by a handler that was called with bad arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

var errNotLoggedIn = errors.New("please log in first")

// runREPL starts a read–eval–print loop over reader.
//
// The first token of each line selects the command; the rest are passed as
// args. Handler errors are reported through userMessage and never stop the
// loop. The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	cmds := a.commands()
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
	}

	for {
		fmt.Fprintf(w, "storefront%s> ", a.status())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(w, cmds)
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			fmt.Fprintln(w, userMessage(err))
		}
	}
}

func printHelp(w io.Writer, cmds []command) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range cmds {
		fmt.Fprintf(w, "  %-28s\n", c.usage)
	}
	fmt.Fprintf(w, "  %-28s\n", "help")
	fmt.Fprintf(w, "  %-28s\n", "exit | quit")
}

// userMessage maps error kinds to the text shown at the prompt.
func userMessage(err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return "Usage: " + string(usage)
	case errors.Is(err, common.ErrorProductNotFound):
		return "Product not found."
	case errors.Is(err, common.ErrorEmailAlreadyRegistered):
		return "This email is already registered. Try another email or log in."
	case errors.Is(err, common.ErrorUserNotFound):
		return "User not found."
	case errors.Is(err, common.ErrorInvalidCredentials):
		return "Invalid credentials. Please try again."
	case errors.Is(err, common.ErrCartEmpty):
		return "Your cart is empty."
	case errors.Is(err, common.ErrInvalidImport):
		return "Import rejected: " + err.Error()
	case errors.Is(err, common.ErrInvalidEmail), errors.Is(err, common.ErrWeakPassword):
		return "Invalid input: " + err.Error()
	case errors.Is(err, errNotLoggedIn):
		return "Please log in first."
	default:
		return "Error: " + err.Error()
	}
}
