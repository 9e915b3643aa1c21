package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/files"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/kv"
	"github.com/dmitrijs2005/docvault/internal/client/share"
	"github.com/dmitrijs2005/docvault/internal/client/storage"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// ---- helpers ----

type testEnv struct {
	dir    string
	store  *kv.DBStore
	auth   AuthService
	files  *files.LocalStorage
	sharer *fakeSharer
	docs   DocumentService
	logBuf *syncBuffer
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func newStore(t *testing.T) *kv.DBStore {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.InitDatabase(context.Background(), config.DriverSQLite, filepath.Join(dir, "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := storage.NewStore(db, config.DriverSQLite)
	require.NoError(t, err)
	return store
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	store := newStore(t)
	buf := &syncBuffer{}
	log := logging.New(buf, slog.LevelDebug)

	env := &testEnv{
		dir:    dir,
		store:  store,
		auth:   NewAuthService(store, log),
		files:  files.NewLocalStorage(dir),
		sharer: &fakeSharer{available: true},
		logBuf: buf,
	}
	env.docs = NewDocumentService(env.auth, store, env.files, env.sharer, filepath.Join(dir, "cache"), log)
	return env
}

// sourceFile writes a picker-style source file outside the vault.
func sourceFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// ---- fakes ----

type fakeSharer struct {
	available bool
	err       error
	calls     []share.Request
}

func (f *fakeSharer) Available(ctx context.Context) bool { return f.available }

func (f *fakeSharer) Share(ctx context.Context, req share.Request) error {
	f.calls = append(f.calls, req)
	return f.err
}

// failingStore wraps a Store and fails writes to keys with the given prefix.
type failingStore struct {
	kv.Store
	prefix string
	getErr bool
}

var errDisk = errors.New("disk full")

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr && strings.HasPrefix(key, f.prefix) {
		return nil, errDisk
	}
	return f.Store.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasPrefix(key, f.prefix) {
		return errDisk
	}
	return f.Store.Set(ctx, key, value)
}

type staticIdentity struct {
	session *models.Session
}

func (s staticIdentity) Current() (models.Session, bool) {
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}
