package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"ptjobs/internal/api"
	"ptjobs/internal/domain"
	"ptjobs/internal/logging"
	"ptjobs/internal/store"
)

// Storage keys for the persisted session.
const (
	KeyToken   = "userToken"
	KeyRole    = "userRole"
	KeyProfile = "userInfo"
)

var keys = []string{KeyToken, KeyRole, KeyProfile}

const (
	opBootstrap = "bootstrap"
	opLogin     = "login"
	opRegister  = "register"
	opLogout    = "logout"
)

// OAuth identifies this application to the token endpoint.
type OAuth struct {
	ClientID     string
	ClientSecret string
}

type subscriber struct {
	id int
	fn func(domain.Session)
}

// Service is the Session Store.
//
// Transitions are single-flight: while one of Bootstrap, Login, Register or
// Logout runs, the others fail fast with ErrBusy.
type Service struct {
	store domain.KeyValueStore
	auth  domain.AuthClient
	oauth OAuth
	log   zerolog.Logger

	busy atomic.Bool

	mu     sync.RWMutex
	cur    domain.Session
	booted bool
	subs   []subscriber
	nextID int
}

// New constructs a Service in the restoring state.
func New(kv domain.KeyValueStore, auth domain.AuthClient, oauth OAuth, log zerolog.Logger) *Service {
	return &Service{
		store: kv,
		auth:  auth,
		oauth: oauth,
		log:   log,
		cur:   domain.Session{Loading: domain.LoadingRestoring},
	}
}

// Snapshot returns a copy of the current session.
func (s *Service) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone()
}

// Subscribe registers fn for committed session changes. Calls happen on the
// goroutine that made the change, after the change is visible to Snapshot.
func (s *Service) Subscribe(fn func(domain.Session)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// swap installs next and notifies subscribers.
func (s *Service) swap(next domain.Session) {
	s.mu.Lock()
	s.cur = next.Clone()
	s.booted = true
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next.Clone())
	}
}

func (s *Service) acquire() bool { return s.busy.CompareAndSwap(false, true) }
func (s *Service) release()      { s.busy.Store(false) }

// Bootstrap restores the persisted session. Only the first call does any
// work. The loading state always settles to ready.
func (s *Service) Bootstrap(ctx context.Context) {
	if !s.acquire() {
		s.log.Warn().Str(logging.OP, opBootstrap).Msg("skipped: transition in flight")
		return
	}
	defer s.release()

	s.mu.RLock()
	booted := s.booted
	s.mu.RUnlock()
	if booted {
		return
	}

	next := domain.Session{Loading: domain.LoadingReady}
	defer func() { s.swap(next) }()

	restored, err := s.restore(ctx)
	switch {
	case errors.Is(err, store.ErrCorrupted):
		s.log.Error().Err(err).Str(logging.OP, opBootstrap).Msg("stored session is corrupted, clearing it")
		if rmErr := s.store.RemoveMany(ctx, keys...); rmErr != nil {
			s.log.Warn().Err(rmErr).Str(logging.OP, opBootstrap).Msg("clear corrupted session")
		}
	case err != nil:
		s.log.Warn().Err(err).Str(logging.OP, opBootstrap).Msg("read stored session")
	default:
		next = restored
		next.Loading = domain.LoadingReady
	}
}

func (s *Service) restore(ctx context.Context) (domain.Session, error) {
	token, ok, err := s.store.Get(ctx, KeyToken)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok || token == "" {
		return domain.Session{}, nil
	}

	rawRole, _, err := s.store.Get(ctx, KeyRole)
	if err != nil {
		return domain.Session{}, err
	}
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		s.log.Warn().Str(logging.OP, opBootstrap).Str("role", rawRole).Msg("stored role is invalid, ignoring session")
		return domain.Session{}, nil
	}

	sess := domain.Session{Token: token, Role: role}
	info, ok, err := s.store.Get(ctx, KeyProfile)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok || info == "" {
		s.log.Warn().Str(logging.OP, opBootstrap).Msg("stored profile missing, session degraded")
		return sess, nil
	}
	var p domain.Profile
	if err := json.Unmarshal([]byte(info), &p); err != nil {
		s.log.Warn().Err(err).Str(logging.OP, opBootstrap).Msg("stored profile unreadable, session degraded")
		return sess, nil
	}
	sess.Profile = &p
	return sess, nil
}

// Login authenticates with the password grant and commits the session.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	if !s.acquire() {
		return ErrBusy
	}
	defer s.release()
	return s.login(ctx, opLogin, creds)
}

func (s *Service) login(ctx context.Context, op string, creds domain.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return &AuthError{Op: op, Message: "username and password are required"}
	}

	tok, err := s.auth.Token(ctx, domain.PasswordGrant{
		Username:     creds.Username,
		Password:     creds.Password,
		ClientID:     s.oauth.ClientID,
		ClientSecret: s.oauth.ClientSecret,
		GrantType:    domain.GrantTypePassword,
	})
	if err != nil {
		return s.fail(op, err)
	}

	var profile domain.Profile
	if tok.User != nil {
		profile = *tok.User
	} else {
		profile, err = s.auth.CurrentUser(ctx, tok.AccessToken)
		if err != nil {
			return s.fail(op, err)
		}
	}
	return s.commit(ctx, op, tok.AccessToken, profile)
}

// Register creates an account and commits the resulting session. When the
// server does not hand back a token the new credentials are used to log in.
func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	if !s.acquire() {
		return ErrBusy
	}
	defer s.release()

	if strings.TrimSpace(reg.Username) == "" || reg.Password == "" {
		return &AuthError{Op: opRegister, Message: "username and password are required"}
	}
	if _, ok := domain.ParseRole(reg.Role); !ok {
		return &AuthError{Op: opRegister, Message: "role must be candidate or company"}
	}

	resp, err := s.auth.CreateUser(ctx, reg)
	if err != nil {
		return s.fail(opRegister, err)
	}
	if resp.Token != "" && resp.User != nil {
		return s.commit(ctx, opRegister, resp.Token, *resp.User)
	}
	return s.login(ctx, opRegister, reg.Credentials())
}

// commit validates p, persists all three keys and then swaps memory.
func (s *Service) commit(ctx context.Context, op, token string, p domain.Profile) error {
	if err := api.ValidateProfile(p); err != nil {
		return s.fail(op, err)
	}
	role, _ := domain.ParseRole(p.Role)

	raw, err := json.Marshal(p)
	if err != nil {
		return &AuthError{Op: op, Message: "could not encode the profile", Err: err}
	}
	if err := s.store.SetMany(ctx, map[string]string{
		KeyToken:   token,
		KeyRole:    string(role),
		KeyProfile: string(raw),
	}); err != nil {
		s.log.Error().Err(err).Str(logging.OP, op).Msg("persist session")
		return &AuthError{Op: op, Message: "could not save the session", Err: err}
	}

	s.swap(domain.Session{Token: token, Role: role, Profile: &p, Loading: domain.LoadingReady})
	s.log.Info().Str(logging.OP, op).Str("user", p.Username).Str("role", string(role)).Msg("session started")
	return nil
}

func (s *Service) fail(op string, err error) error {
	s.log.Warn().Err(err).Str(logging.OP, op).Msg("authentication failed")
	return &AuthError{Op: op, Message: describe(op, err), Err: err}
}

// Logout clears storage and memory. Memory is cleared even when storage
// fails; the storage error is still returned.
func (s *Service) Logout(ctx context.Context) error {
	if !s.acquire() {
		return ErrBusy
	}
	defer s.release()

	err := s.store.RemoveMany(ctx, keys...)

	s.mu.RLock()
	was := s.cur
	s.mu.RUnlock()
	if was.Authenticated() || !was.Loading.Resolved() {
		s.swap(domain.Session{Loading: domain.LoadingReady})
	}

	if err != nil {
		s.log.Error().Err(err).Str(logging.OP, opLogout).Msg("clear stored session")
		return fmt.Errorf("session: logout: %w", err)
	}
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
