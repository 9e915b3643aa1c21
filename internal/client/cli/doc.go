// Package cli provides the interactive docvault command-line client.
//
// It restores the persisted session, then runs a REPL over the session and
// document services. Typical flow: sign up or log in, add documents from
// local files or camera captures, list and inspect them, share or delete.
//
// Key features:
//   - Signup / Login / Logout / Whoami
//   - Add documents from a file (add) or an image capture (scan)
//   - List / Show / Delete / Share documents
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See App and runREPL for details.
package cli
