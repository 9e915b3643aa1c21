package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// App is the interactive client: it owns the terminal streams and drives
// the session and document services.
type App struct {
	authService     services.AuthService
	documentService services.DocumentService
	log             logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App reading commands and answers from in and writing to out.
func NewApp(as services.AuthService, ds services.DocumentService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService:     as,
		documentService: ds,
		log:             log,
		reader:          bufio.NewReader(in),
		out:             out,
	}
}

// Run restores the previous session, if any, and runs the REPL until the
// user exits.
func (a *App) Run(ctx context.Context) error {
	s, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to docvault (type 'help' for commands)")
	if s != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Name)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

func (a *App) getStatus() string {
	s, ok := a.authService.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", s.Email)
}
