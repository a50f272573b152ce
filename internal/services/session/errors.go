package session

import (
	"errors"
	"net/http"

	"ptjobs/internal/api"
)

var (
	// ErrBusy is returned when another session transition is in flight.
	ErrBusy = errors.New("session: another operation is in progress")
)

// AuthError is a failed login or register. Message is safe to show to the
// user; Err carries the underlying cause.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return "session: " + e.Op + ": " + e.Message + ": " + e.Err.Error()
	}
	return "session: " + e.Op + ": " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// describe maps a collaborator failure to a user-facing message.
func describe(op string, err error) string {
	var se *api.StatusError
	switch {
	case errors.As(err, &se):
		switch {
		case op == opLogin && (se.Code == http.StatusBadRequest || se.Code == http.StatusUnauthorized):
			return "invalid username or password"
		case se.Code == http.StatusBadRequest && se.Detail != "":
			return se.Detail
		case se.Code >= 500:
			return "the server is unavailable, try again later"
		case se.Detail != "":
			return se.Detail
		default:
			return "request rejected (" + se.Status + ")"
		}
	case errors.Is(err, api.ErrMalformedResponse):
		return "unexpected response from the server"
	default:
		return "could not reach the server"
	}
}
