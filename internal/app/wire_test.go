package app

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ptjobs/internal/domain"
	"ptjobs/internal/mockapi"
	"ptjobs/internal/services/navigation"
)

func newTestApp(t *testing.T, backend, passphrase string) (*App, *prometheus.Registry) {
	t.Helper()
	srv, err := mockapi.New(mockapi.Options{
		ClientID:     "cli",
		ClientSecret: "secret",
		SigningKey:   []byte("k"),
		BcryptCost:   bcrypt.MinCost,
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("mockapi: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	reg := prometheus.NewRegistry()
	a, err := New(Config{
		Home:     t.TempDir(),
		API:      APIConfig{BaseURL: ts.URL, Timeout: 5 * time.Second},
		OAuth:    OAuthConfig{ClientID: "cli", ClientSecret: "secret"},
		Storage:  StorageConfig{Backend: backend, Passphrase: passphrase},
		Log:      LogConfig{Level: "off"},
		Registry: reg,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, reg
}

func TestWire_SessionDrivesNavigator(t *testing.T) {
	for _, backend := range []string{"memory", "file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			a, reg := newTestApp(t, backend, "")
			ctx := context.Background()

			if s := a.Start(ctx); s.Authenticated() || s.Loading != domain.LoadingReady {
				t.Fatalf("fresh start = %+v", s)
			}
			if got := a.Navigator.Current().Destination; got != navigation.Login {
				t.Fatalf("unauthenticated root = %s", got)
			}

			if err := a.LoginAndContinue(ctx, domain.Credentials{Username: "jollibee", Password: "password123"}, ""); err != nil {
				t.Fatalf("login: %v", err)
			}
			if a.Navigator.Role() != domain.RoleCompany || a.Navigator.Current().Destination != navigation.Home {
				t.Fatalf("after login: role=%s at %s", a.Navigator.Role(), a.Navigator.Current().Destination)
			}
			if _, err := a.Catalog.Posts(ctx, domain.ListQuery{}); err != nil {
				t.Fatalf("posts: %v", err)
			}

			if err := a.Session.Logout(ctx); err != nil {
				t.Fatalf("logout: %v", err)
			}
			if a.Navigator.Role() != domain.RoleNone || a.Navigator.Current().Destination != navigation.Login {
				t.Fatalf("after logout at %s", a.Navigator.Current().Destination)
			}

			n, err := testutil.GatherAndCount(reg, "ptjobs_api_requests_total")
			if err != nil {
				t.Fatal(err)
			}
			if n == 0 {
				t.Fatal("no client metrics recorded")
			}
		})
	}
}

func TestApp_LoginContinuesToNext(t *testing.T) {
	tcases := []struct {
		name string
		next domain.Destination
		want domain.Destination
		deep int
	}{
		{"none", "", navigation.Home, 0},
		{"tab", navigation.Jobs, navigation.Jobs, 0},
		{"shared screen", navigation.Notifications, navigation.Notifications, 1},
		{"other role's tab", navigation.Posts, navigation.Home, 0},
		{"unknown", "Nowhere", navigation.Home, 0},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := newTestApp(t, "memory", "")
			ctx := context.Background()
			a.Start(ctx)
			if err := a.LoginAndContinue(ctx, domain.Credentials{Username: "alice", Password: "password123"}, tc.next); err != nil {
				t.Fatalf("login: %v", err)
			}
			if got := a.Navigator.Current().Destination; got != tc.want {
				t.Fatalf("landed on %s, want %s", got, tc.want)
			}
			if d := a.Navigator.Depth(); d != tc.deep {
				t.Fatalf("depth = %d, want %d", d, tc.deep)
			}
		})
	}
}

func TestApp_RestoresAcrossRestarts(t *testing.T) {
	a, _ := newTestApp(t, "file", "correct horse")
	ctx := context.Background()
	a.Start(ctx)
	if err := a.LoginAndContinue(ctx, domain.Credentials{Username: "alice", Password: "password123"}, ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cfg := a.Config
	cfg.Registry = nil
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	s := b.Start(ctx)
	if !s.Authenticated() || s.Role != domain.RoleCandidate || s.Profile == nil || s.Profile.Username != "alice" {
		t.Fatalf("restored = %+v", s)
	}
	if b.Navigator.Current().Destination != navigation.Home {
		t.Fatalf("restored navigator at %s", b.Navigator.Current().Destination)
	}

	// A different passphrase cannot open the sealed values; the session is
	// dropped and loading still settles to ready.
	cfg.Storage.Passphrase = "wrong"
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen wrong passphrase: %v", err)
	}
	defer c.Close()
	if s := c.Start(ctx); s.Authenticated() || s.Loading != domain.LoadingReady {
		t.Fatalf("wrong passphrase session = %+v", s)
	}
	if c.Navigator.Current().Destination != navigation.Login {
		t.Fatalf("wrong passphrase navigator at %s", c.Navigator.Current().Destination)
	}
}
