package app

import (
	"context"

	"ptjobs/internal/domain"
	"ptjobs/internal/services/navigation"
)

// App is the running client: the wired graph plus its lifecycle.
type App struct {
	*Wire
}

// New builds the graph for cfg.
func New(cfg Config) (*App, error) {
	w, err := NewWire(cfg)
	if err != nil {
		return nil, err
	}
	return &App{Wire: w}, nil
}

// Start restores the persisted session and returns it. The navigator is
// mounted for the restored role by the session subscription.
func (a *App) Start(ctx context.Context) domain.Session {
	a.Session.Bootstrap(ctx)
	return a.Session.Snapshot()
}

// LoginAndContinue logs in and then opens next when the new role may reach
// it. An unreachable next is ignored and the role's root stays active.
func (a *App) LoginAndContinue(ctx context.Context, creds domain.Credentials, next domain.Destination) error {
	if err := a.Session.Login(ctx, creds); err != nil {
		return err
	}
	a.continueTo(next)
	return nil
}

// RegisterAndContinue is LoginAndContinue for a new account.
func (a *App) RegisterAndContinue(ctx context.Context, reg domain.Registration, next domain.Destination) error {
	if err := a.Session.Register(ctx, reg); err != nil {
		return err
	}
	a.continueTo(next)
	return nil
}

func (a *App) continueTo(next domain.Destination) {
	if next == "" {
		return
	}
	topo := a.Navigator.Topology()
	role := a.Navigator.Role()
	if !topo.Reachable(role, next) || next == topo.Root(role) {
		return
	}
	if isTab(topo, role, next) {
		_ = a.Navigator.SelectTab(next)
		return
	}
	_ = a.Navigator.NavigateTo(next, nil)
}

func isTab(topo *navigation.Topology, role domain.Role, dest domain.Destination) bool {
	for _, t := range topo.Tabs(role) {
		if t == dest {
			return true
		}
	}
	return false
}
