package interfaces

import (
	"context"

	domaintypes "ptjobs/internal/domain/types"
)

// SessionService owns who is logged in and keeps it in sync with storage.
type SessionService interface {
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, creds domaintypes.Credentials) error
	Register(ctx context.Context, reg domaintypes.Registration) error
	Logout(ctx context.Context) error

	Snapshot() domaintypes.Session
	Subscribe(fn func(domaintypes.Session)) (cancel func())
}

// Navigator is the active screen plus its back-stack.
type Navigator interface {
	NavigateTo(dest domaintypes.Destination, params domaintypes.Params) error
	GoBack() bool
	SelectTab(dest domaintypes.Destination) error
	Reset(role domaintypes.Role)

	Current() domaintypes.Node
	Role() domaintypes.Role
	Depth() int
}
