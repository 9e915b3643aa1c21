// Package services contains the application services of the docvault client.
// This file defines the session store: signup, login, logout and restoring
// the persisted session at startup.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/kv"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/cryptox"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

const (
	keySession = "user"
	keyUsers   = "users"
)

// AuthService authenticates users against the local registry and keeps the
// single active session.
//
// Contract:
//   - Signup: register a new user and make it the active session.
//   - Login: verify credentials and make the user the active session.
//   - Logout: drop the persisted and in-memory session; idempotent.
//   - Restore: load the persisted session once at startup.
//   - Current: the active session, if any.
type AuthService interface {
	Signup(ctx context.Context, name, email string, password []byte) (models.Session, error)
	Login(ctx context.Context, email string, password []byte) (models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.Session, error)
	Current() (models.Session, bool)
}

type authService struct {
	store kv.Store
	log   logging.Logger

	mu      sync.RWMutex
	session *models.Session
}

// NewAuthService constructs an AuthService over the given key-value store.
// It starts without a session; call Restore to pick up a persisted one.
func NewAuthService(store kv.Store, log logging.Logger) AuthService {
	return &authService{store: store, log: log}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrStorageIO, err)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func loadUsers(ctx context.Context, r kv.Repository) ([]models.User, error) {
	b, err := r.Get(ctx, keyUsers)
	if err != nil {
		return nil, storageErr("load users", err)
	}
	if b == nil {
		return nil, nil
	}
	var users []models.User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, storageErr("decode users", err)
	}
	return users, nil
}

func saveJSON(ctx context.Context, r kv.Repository, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.Set(ctx, key, b); err != nil {
		return storageErr("save "+key, err)
	}
	return nil
}

func (a *authService) setSession(s *models.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

// Signup appends a new user to the registry and persists it together with
// the new session in one transaction. The registry is left untouched when
// the email is already registered.
func (a *authService) Signup(ctx context.Context, name, email string, password []byte) (models.Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) == 0 {
		return models.Session{}, fmt.Errorf("%w: name, email and password are required", common.ErrInvalidInput)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: cryptox.HashPassword(password),
	}
	session := user.Session()

	err := a.store.InTx(ctx, func(ctx context.Context, r kv.Repository) error {
		users, err := loadUsers(ctx, r)
		if err != nil {
			return err
		}
		for _, u := range users {
			if normalizeEmail(u.Email) == email {
				return common.ErrDuplicateUser
			}
		}
		if err := saveJSON(ctx, r, keyUsers, append(users, user)); err != nil {
			return err
		}
		return saveJSON(ctx, r, keySession, session)
	})
	if err != nil {
		return models.Session{}, err
	}

	a.setSession(&session)
	a.log.Info(ctx, "user signed up", "user_id", session.ID)
	return session, nil
}

// Login scans the registry for the email and verifies the password.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) == 0 {
		return models.Session{}, common.ErrInvalidCredentials
	}

	users, err := loadUsers(ctx, a.store)
	if err != nil {
		return models.Session{}, err
	}

	for _, u := range users {
		if normalizeEmail(u.Email) != email {
			continue
		}
		ok, err := cryptox.VerifyPassword(u.Password, password)
		if err != nil {
			a.log.Warn(ctx, "unreadable password hash", "user_id", u.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		session := u.Session()
		if err := saveJSON(ctx, a.store, keySession, session); err != nil {
			return models.Session{}, err
		}
		a.setSession(&session)
		a.log.Info(ctx, "user logged in", "user_id", session.ID)
		return session, nil
	}
	return models.Session{}, common.ErrInvalidCredentials
}

// Logout clears the in-memory session even when removing the persisted one
// fails.
func (a *authService) Logout(ctx context.Context) error {
	a.setSession(nil)
	if err := a.store.Delete(ctx, keySession); err != nil {
		return storageErr("clear session", err)
	}
	return nil
}

// Restore reads the persisted session without checking that the user is
// still in the registry. It returns nil when no session was saved.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	b, err := a.store.Get(ctx, keySession)
	if err != nil {
		return nil, storageErr("load session", err)
	}
	if b == nil {
		a.setSession(nil)
		return nil, nil
	}

	var s models.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, storageErr("decode session", err)
	}
	a.setSession(&s)
	return &s, nil
}

func (a *authService) Current() (models.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return models.Session{}, false
	}
	return *a.session, true
}
