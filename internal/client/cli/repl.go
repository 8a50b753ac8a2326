package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddNote(ctx context.Context) error
	EditNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                  show available commands
//	  - signup | register     create an account and sign in
//	  - login                 authenticate
//	  - status                show the stored token
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - help                  show available commands
//	  - add                   add a note
//	  - edit <id> title|body  change one field of a note
//	  - delete <id>           delete a note
//	  - list | l              reload and list notes
//	  - show                  list notes without reloading
//	  - status                show the stored token
//	  - logout                log out
//	  - exit | quit           leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own output. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "mn %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: add, edit <id> title|body, delete <id>, (l)ist, show, status, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: signup, login, status, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.AddNote(ctx)

		case "edit":
			_ = a.EditNote(ctx, args)

		case "delete":
			_ = a.DeleteNote(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
