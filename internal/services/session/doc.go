// Package session owns the process-wide authenticated session.
//
// It restores the session from persistent storage at startup, performs the
// login, register and logout transitions, and notifies subscribers of every
// committed change. Memory and storage always move together: a failed
// transition leaves both as they were.
package session
