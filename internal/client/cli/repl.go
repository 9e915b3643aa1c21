package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Scan(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id string) error
}

// runREPL starts a simple read-eval-print loop for the docvault CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands taking a document id read it from
// the second token. The loop exits on EOF or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - signup           create an account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - list | l         list documents
//	  - show <id>        show a single document
//	  - add              add a document from a local file
//	  - scan             add a document from an image capture
//	  - delete <id>      delete a document and its file
//	  - share <id>       share a document's file
//	  - whoami           show the active user
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Errors returned by handlers are rendered as a single user-facing line and
// the loop continues, so the user can retry manually.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("docvault%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <id>, add, scan, delete <id>, share <id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "scan":
			cmdErr = a.Scan(ctx)

		case "show", "delete", "share":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, args[0])
			case "delete":
				cmdErr = a.Delete(ctx, args[0])
			case "share":
				cmdErr = a.Share(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", userMessage(cmdErr))
		}

		if err != nil {
			return
		}
	}
}
