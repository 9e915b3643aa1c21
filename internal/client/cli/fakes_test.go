package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// ------------ helpers ------------

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// stubPasswords answers successive password prompts with pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ io.Writer) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// newTestApp builds an App whose prompts are answered by lines.
func newTestApp(as *fakeAuth, ds *fakeDocs, lines ...string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return NewApp(as, ds, logging.Discard(), in, &out), &out
}

// ------------ fakes ------------

type fakeAuth struct {
	session *models.Session

	signupName, signupEmail, signupPass string
	signupErr                           error

	loginEmail, loginPass string
	loginErr              error

	logoutCalled bool
	logoutErr    error

	restore    *models.Session
	restoreErr error
}

func (f *fakeAuth) Signup(_ context.Context, name, email string, password []byte) (models.Session, error) {
	f.signupName, f.signupEmail, f.signupPass = name, email, string(password)
	if f.signupErr != nil {
		return models.Session{}, f.signupErr
	}
	s := models.Session{ID: "u1", Name: name, Email: email}
	f.session = &s
	return s, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (models.Session, error) {
	f.loginEmail, f.loginPass = email, string(password)
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	s := models.Session{ID: "u1", Name: "Alice", Email: email}
	f.session = &s
	return s, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.session = nil
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (*models.Session, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	f.session = f.restore
	return f.restore, nil
}

func (f *fakeAuth) Current() (models.Session, bool) {
	if f.session == nil {
		return models.Session{}, false
	}
	return *f.session, true
}

func loggedIn() *fakeAuth {
	return &fakeAuth{session: &models.Session{ID: "u1", Name: "Alice", Email: "a@x.com"}}
}

type fakeDocs struct {
	docs []models.Document

	listErr  error
	added    []models.Draft
	addErr   error
	deleted  []string
	shared   []string
	shareErr error
	resets   int
}

func (f *fakeDocs) List(context.Context) ([]models.Document, error) {
	return f.docs, f.listErr
}

func (f *fakeDocs) Get(_ context.Context, id string) (models.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Document{}, common.ErrNotFound
}

func (f *fakeDocs) Add(_ context.Context, d models.Draft) (models.Document, error) {
	if f.addErr != nil {
		return models.Document{}, f.addErr
	}
	f.added = append(f.added, d)
	doc := models.Document{ID: "d-new", Name: d.Name, Description: d.Description, Type: d.Type, File: d.File}
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeDocs) Delete(ctx context.Context, id string) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDocs) Share(ctx context.Context, id string) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	f.shared = append(f.shared, id)
	return f.shareErr
}

func (f *fakeDocs) Documents() []models.Document { return f.docs }
func (f *fakeDocs) Reset()                       { f.resets++ }
