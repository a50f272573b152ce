package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"ptjobs/internal/api"
	"ptjobs/internal/domain"
	"ptjobs/internal/logging"
	"ptjobs/internal/services/catalog"
	"ptjobs/internal/services/navigation"
	sessionsvc "ptjobs/internal/services/session"
	"ptjobs/internal/store"
)

// Wire bundles the store, API client and services for the CLI.
type Wire struct {
	Config    Config
	Store     domain.KeyValueStore
	API       *api.Client
	Session   *sessionsvc.Service
	Navigator *navigation.Navigator
	Catalog   *catalog.Service
	HTTP      *http.Client

	closers     []store.Closer
	unsubscribe func()
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Home != "" {
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
	}

	// Storage, optionally sealed at rest
	kv, err := store.Open(cfg.Storage.Backend, cfg.Home)
	if err != nil {
		return nil, err
	}
	w := &Wire{Config: cfg}
	if c, ok := kv.(store.Closer); ok {
		w.closers = append(w.closers, c)
	}
	if cfg.Storage.Passphrase != "" {
		sealed, err := store.NewSealedStore(kv, cfg.Storage.Passphrase, store.DefaultScryptParams())
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		kv = sealed
	}
	w.Store = kv

	// Ensure an HTTP client is available for outbound calls
	w.HTTP = cfg.HTTP
	if w.HTTP == nil {
		w.HTTP = &http.Client{Timeout: cfg.API.Timeout}
	}
	w.API = api.New(cfg.API.BaseURL, w.HTTP)
	w.API.Metrics = api.NewMetrics(cfg.Registry)

	// High-level services
	w.Session = sessionsvc.New(kv, w.API, sessionsvc.OAuth{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
	}, logging.New("session"))
	w.Navigator = navigation.NewNavigator(navigation.Default(), domain.RoleNone, logging.New("navigation"))
	w.Catalog = catalog.New(w.API, w.Session, logging.New("catalog"))

	// Every committed session change remounts the tab set for the new role.
	w.unsubscribe = w.Session.Subscribe(func(s domain.Session) {
		w.Navigator.Reset(s.Role)
	})
	return w, nil
}

// Close releases store handles and detaches the navigator.
func (w *Wire) Close() error {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	var errs []error
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
