package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

func registry(t *testing.T, env *testEnv) []models.User {
	t.Helper()
	b, err := env.store.Get(context.Background(), keyUsers)
	require.NoError(t, err)
	if b == nil {
		return nil
	}
	var users []models.User
	require.NoError(t, json.Unmarshal(b, &users))
	return users
}

func TestSignupThenLogin(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	s, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, "a@x.com", s.Email)
	assert.NotEmpty(t, s.ID)

	cur, ok := env.auth.Current()
	require.True(t, ok)
	assert.Equal(t, s, cur)

	require.NoError(t, env.auth.Logout(ctx))

	got, err := env.auth.Login(ctx, "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = env.auth.Login(ctx, "a@x.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "nobody@x.com", []byte("pw1"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestSignup_PasswordNeverStoredInPlainText(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)

	users := registry(t, env)
	require.Len(t, users, 1)
	assert.NotEqual(t, "pw1", users[0].Password)
	assert.True(t, strings.HasPrefix(users[0].Password, "$argon2id$"))

	raw, err := env.store.Get(ctx, keySession)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestSignup_Duplicate(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	first, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	before := registry(t, env)

	_, err = env.auth.Signup(ctx, "Mallory", " a@x.com ", []byte("pw2"))
	require.ErrorIs(t, err, common.ErrDuplicateUser)

	assert.Equal(t, before, registry(t, env))

	cur, ok := env.auth.Current()
	require.True(t, ok)
	assert.Equal(t, first, cur)
}

func TestSignup_Validation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@x.com", "pw"},
		{"Alice", "  ", "pw"},
		{"Alice", "a@x.com", ""},
	}
	for _, c := range cases {
		_, err := env.auth.Signup(ctx, c.name, c.email, []byte(c.password))
		require.ErrorIs(t, err, common.ErrInvalidInput)
	}
	assert.Empty(t, registry(t, env))
}

func TestLogout_Idempotent(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Logout(ctx))

	_, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx))
	require.NoError(t, env.auth.Logout(ctx))

	_, ok := env.auth.Current()
	assert.False(t, ok)

	raw, err := env.store.Get(ctx, keySession)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRestore(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	s, err := env.auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	signed, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)

	// a fresh process sees the persisted session
	fresh := NewAuthService(env.store, logging.Discard())
	_, ok := fresh.Current()
	require.False(t, ok)

	s, err = fresh.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, signed, *s)

	cur, ok := fresh.Current()
	require.True(t, ok)
	assert.Equal(t, signed, cur)
}

func TestRestore_DoesNotValidateRegistry(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	ghost := models.Session{ID: "ghost", Name: "Ghost", Email: "g@x.com"}
	b, err := json.Marshal(ghost)
	require.NoError(t, err)
	require.NoError(t, env.store.Set(ctx, keySession, b))

	s, err := env.auth.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, ghost, *s)
}

func TestRestore_Corrupt(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Set(ctx, keySession, []byte("{not json")))

	_, err := env.auth.Restore(ctx)
	require.ErrorIs(t, err, common.ErrStorageIO)
}

func TestLogin_CorruptRegistry(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Set(ctx, keyUsers, []byte("[")))

	_, err := env.auth.Login(ctx, "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrStorageIO)

	_, err = env.auth.Signup(ctx, "A", "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrStorageIO)
}

func TestLogin_SkipsMalformedHash(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	users := []models.User{{ID: "1", Name: "Old", Email: "a@x.com", Password: "pw"}}
	b, err := json.Marshal(users)
	require.NoError(t, err)
	require.NoError(t, env.store.Set(ctx, keyUsers, b))

	_, err = env.auth.Login(ctx, "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Contains(t, env.logBuf.String(), "unreadable password hash")
}

func TestLogin_SessionWriteFails(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)

	auth := NewAuthService(&failingStore{Store: env.store, prefix: keySession}, logging.Discard())
	_, err = auth.Login(ctx, "a@x.com", []byte("pw1"))
	require.ErrorIs(t, err, common.ErrStorageIO)
	require.ErrorIs(t, err, errDisk)

	_, ok := auth.Current()
	assert.False(t, ok)
}

func TestSignup_MultipleUsers(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	a, err := env.auth.Signup(ctx, "Alice", "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	b, err := env.auth.Signup(ctx, "Bob", "b@x.com", []byte("pw2"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	assert.Len(t, registry(t, env), 2)

	got, err := env.auth.Login(ctx, "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, a, got)
}
