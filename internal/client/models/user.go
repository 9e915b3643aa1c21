// Package models defines the client-side data models persisted by docvault:
// the user registry, the active session and per-user document records.
package models

// User is a registry entry. Password holds an encoded password hash, never
// the plain text.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the authenticated identity with the password stripped.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session reduces u to its password-free form.
func (u User) Session() Session {
	return Session{ID: u.ID, Name: u.Name, Email: u.Email}
}
