package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/docvault/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Signup prompts for name, email and password (entered twice) and
// registers a new user, who becomes the active session. Both password
// slices are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Confirm the password")
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	s, err := a.authService.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.documentService.Reset()
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", s.Name)
	return nil
}

// Login prompts for credentials and makes the matching user the active
// session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.documentService.Reset()
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.Name)
	return nil
}

// Logout drops the session and the cached document list.
func (a *App) Logout(ctx context.Context) error {
	a.documentService.Reset()
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, ok := a.authService.Current()
	if !ok {
		return common.ErrUnauthenticated
	}
	fmt.Fprintf(a.out, "%s <%s>\n", s.Name, s.Email)
	return nil
}
