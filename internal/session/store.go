// Package session owns the authenticated principal for the running
// client: login, logout, and rehydration of the previous session from
// durable storage so a restart does not land on the login screen.
//
// Persistence is split by sensitivity: the allow-listed session fields
// (principal identity, authenticated flag) go to a local SQLite
// key-value table; the bearer token goes to the OS keyring. Transient
// state is never persisted.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/99designs/keyring"

	"github.com/ndtran/police-portal/internal/model"
)

const (
	keyPrincipal     = "session.principal"
	keyAuthenticated = "session.authenticated"
)

// Store holds the current principal and persists it across restarts.
// The bearer token is read by every reconciliation cycle but written
// only here, through Login and Logout.
type Store struct {
	kv     *kvStore
	ring   keyring.Keyring
	logger *slog.Logger

	mu        sync.RWMutex
	principal model.Principal
	listeners map[int]chan model.Principal
	nextID    int
}

// Open reads the session database and keyring at dbPath synchronously
// and returns a Store primed with whatever session survived the last
// run. Missing or corrupt persisted state degrades to an unauthenticated
// session, never to an error the caller must handle at boot.
//
// A nil ring opens the system keyring; tests pass keyring.NewArrayKeyring.
func Open(dbPath string, ring keyring.Keyring, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	kv, err := openKV(dbPath)
	if err != nil {
		return nil, err
	}

	if ring == nil {
		ring, err = openKeyring()
		if err != nil {
			kv.close()
			return nil, err
		}
	}

	s := &Store{
		kv:        kv,
		ring:      ring,
		logger:    logger,
		listeners: make(map[int]chan model.Principal),
	}
	s.principal = s.rehydrate()
	return s, nil
}

// rehydrate reads the persisted session fields back into memory. Any
// missing or undecodable field resets the session to unauthenticated.
func (s *Store) rehydrate() model.Principal {
	raw, ok, err := s.kv.get(keyPrincipal)
	if err != nil || !ok {
		return model.Principal{}
	}

	var p model.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("discarding corrupt persisted session", "error", err)
		return model.Principal{}
	}

	authed, ok, err := s.kv.get(keyAuthenticated)
	if err != nil || !ok || authed != "1" {
		return model.Principal{}
	}
	p.Authenticated = true

	tok, err := readToken(s.ring)
	if err != nil {
		s.logger.Warn("token unavailable from keyring", "error", err)
		return model.Principal{}
	}
	p.Token = tok

	return p
}

// Login stores the principal, marks the session authenticated, and
// persists the allow-listed fields plus the token.
func (s *Store) Login(p model.Principal) error {
	p.Authenticated = true

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serializing session: %w", err)
	}

	if err := s.kv.set(keyPrincipal, string(data)); err != nil {
		return err
	}
	if err := s.kv.set(keyAuthenticated, "1"); err != nil {
		return err
	}
	if err := writeToken(s.ring, p.Token); err != nil {
		return err
	}

	s.mu.Lock()
	s.principal = p
	s.mu.Unlock()

	s.logger.Info("session started", "user", p.Name, "role", p.Role)
	s.broadcast()
	return nil
}

// Logout clears the principal and authentication flag and persists the
// cleared state. The in-memory session ends unconditionally: a failure
// to clear persisted state must never leave the process holding a
// credential the caller already declared dead. Derived caches (the
// notification state container) are cleared by the owners subscribed
// via Watch.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.principal = model.Principal{}
	s.mu.Unlock()

	s.logger.Info("session ended")
	s.broadcast()

	if err := errors.Join(
		s.kv.delete(keyPrincipal),
		s.kv.set(keyAuthenticated, "0"),
		deleteToken(s.ring),
	); err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}
	return nil
}

// Current returns a copy of the current principal.
func (s *Store) Current() model.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Authenticated reports whether a principal is logged in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal.Authenticated
}

// Token returns the current bearer credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal.Token
}

// Watch subscribes to session changes. Each change delivers a copy of
// the new principal on the returned channel; stale updates are dropped
// rather than blocking the store. The returned func unsubscribes and
// must be called on consumer teardown.
func (s *Store) Watch() (<-chan model.Principal, func()) {
	ch := make(chan model.Principal, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = ch
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
	return ch, unsubscribe
}

// broadcast delivers the current principal to all listeners without
// blocking.
func (s *Store) broadcast() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.listeners {
		select {
		case ch <- s.principal:
		default:
		}
	}
}

// Close releases the underlying session database.
func (s *Store) Close() error {
	return s.kv.close()
}
