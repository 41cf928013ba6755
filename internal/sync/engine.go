// Package sync keeps the local notification cache eventually consistent
// with the portal backend. One engine per session runs a fixed-interval
// fetch-and-reconcile loop: it guards against expired credentials before
// spending a round trip, diffs fetched records against the cache to find
// new arrivals, raises at most one transient alert per cycle (never for
// the user's own messages), and replaces the cache wholesale with the
// server's list.
package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/notify"
	"github.com/ndtran/police-portal/internal/token"
)

// AlertMsg is a tea.Msg raised when a reconcile cycle detects a new
// notification authored by someone other than the current principal.
// At most one is raised per cycle; a newer alert supersedes whatever
// the toast slot is showing.
type AlertMsg struct {
	Sender  string
	Message string
}

// SessionExpiredMsg is a tea.Msg raised when the credential is expired
// locally or rejected by the server. The receiver must tear the session
// down and route to the login surface.
type SessionExpiredMsg struct{}

// SyncErrorMsg is a tea.Msg raised on a transient fetch failure. The
// previous notification list is preserved; the next tick retries.
type SyncErrorMsg struct {
	Err error
}

// SyncedMsg is a tea.Msg raised after a successful cycle.
type SyncedMsg struct {
	// New is the number of records that were absent before the cycle.
	New int
}

const (
	// defaultInterval is the fixed gap between reconcile cycles.
	defaultInterval = 15 * time.Second

	// fetchTimeout bounds a single notification fetch.
	fetchTimeout = 30 * time.Second
)

// Repository fetches the caller's notification list from the backend.
type Repository interface {
	MyNotifications(ctx context.Context) ([]model.Notification, error)
}

// AuthClassifier reports whether an error is an authentication
// rejection. Split from Repository so fakes can reuse api.IsAuthError.
type AuthClassifier func(error) bool

// Session is the slice of the session store the engine needs: the
// credential is read-only here, and invalidation goes through Logout.
type Session interface {
	Token() string
	Current() model.Principal
	Logout() error
}

// Engine runs the polling loop for one session. All cycles execute on a
// single goroutine, so reconciliation is never reentrant: an overdue
// tick coalesces behind the in-flight cycle instead of stacking.
type Engine struct {
	repo       Repository
	isAuthErr  AuthClassifier
	session    Session
	state      *notify.Store
	interval   time.Duration
	logger     *slog.Logger
	now        func() time.Time
	eventCh    chan tea.Msg

	mu      gosync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	trigger chan struct{}
	running bool
}

// New creates an engine bound to the given repository, session, and
// state container. A zero interval uses the 15 second default.
func New(
	repo Repository,
	isAuthErr AuthClassifier,
	sess Session,
	state *notify.Store,
	interval time.Duration,
	logger *slog.Logger,
) *Engine {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		repo:      repo,
		isAuthErr: isAuthErr,
		session:   sess,
		state:     state,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
		eventCh:   make(chan tea.Msg, 16),
	}
}

// Start begins polling: one immediate initial cycle, then one cycle per
// interval until Stop. Calling Start while a previous run is active
// cancels that run and waits for it to exit, including any cycle it had
// in flight, so exactly one fetch can be outstanding across a restart.
// Start is a no-op when no credential is present.
func (e *Engine) Start() {
	if e.session.Token() == "" {
		return
	}

	e.mu.Lock()
	if e.running {
		close(e.stopCh)
		e.running = false
		done := e.doneCh
		e.mu.Unlock()
		<-done
		e.mu.Lock()
	}
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	e.trigger = make(chan struct{}, 1)
	e.running = true
	stopCh := e.stopCh
	done := e.doneCh
	trigger := e.trigger
	e.mu.Unlock()

	go e.loop(stopCh, done, trigger)
}

// Stop cancels the polling loop. No cycle fires after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	close(e.stopCh)
	e.running = false
}

// Refresh requests an immediate out-of-band cycle. If one is already
// pending the request coalesces.
func (e *Engine) Refresh() {
	e.mu.Lock()
	trigger := e.trigger
	running := e.running
	e.mu.Unlock()

	if !running {
		return
	}
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// Running reports whether a polling loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// WaitForEvent returns a tea.Cmd that blocks until the engine emits the
// next message. Call it again after handling each message to keep
// listening, mirroring the Bubble Tea subscription idiom.
func (e *Engine) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-e.eventCh
	}
}

// loop is the single polling goroutine. Serializing all cycles here is
// what guarantees at most one in-flight fetch per principal. done is
// closed on exit so a restart can wait out the previous loop.
func (e *Engine) loop(stopCh <-chan struct{}, done chan<- struct{}, trigger <-chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	if stop := e.reconcile(true); stop {
		return
	}

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if stop := e.reconcile(false); stop {
				return
			}
		case <-trigger:
			if stop := e.reconcile(false); stop {
				return
			}
		}
	}
}

// reconcile runs one fetch-and-merge cycle. It returns true when the
// loop must terminate because the session was invalidated or the
// credential disappeared. Each cycle succeeds or fails independently;
// the next tick is the retry.
func (e *Engine) reconcile(initial bool) (stop bool) {
	tok := e.session.Token()
	if tok == "" {
		return true
	}

	// Local expiry guard: a credential past its exp claim is dead
	// weight, drop the session without spending a fetch. A malformed
	// claims segment means "no expiry known" and the fetch proceeds.
	if token.Expired(tok, e.now()) {
		e.logger.Info("credential expired locally, ending session")
		e.invalidate()
		return true
	}

	if initial {
		e.state.SetLoading(true)
		defer e.state.SetLoading(false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	fetched, err := e.repo.MyNotifications(ctx)
	if err != nil {
		if e.isAuthErr != nil && e.isAuthErr(err) {
			// Server-side rejection is handled exactly like local
			// expiry. The cached list is left untouched here; the
			// logout path clears it.
			e.logger.Info("credential rejected by server, ending session")
			e.invalidate()
			return true
		}
		e.logger.Warn("notification fetch failed", "error", err)
		e.state.SetError(err.Error())
		e.send(SyncErrorMsg{Err: err})
		return false
	}

	newCount := 0
	if !initial {
		newCount = e.alertForNew(fetched)
	}

	// The fetched list is authoritative: optimistic local edits not yet
	// confirmed by the server are overwritten by design.
	e.state.ReplaceAll(fetched)
	e.send(SyncedMsg{New: newCount})
	return false
}

// alertForNew diffs fetched against the cache by ID, picks the newest
// new record by creation time, and raises an alert for it unless the
// current principal authored it. Returns the number of new records.
func (e *Engine) alertForNew(fetched []model.Notification) int {
	var candidate *model.Notification
	newCount := 0

	for i := range fetched {
		if e.state.Contains(fetched[i].ID) {
			continue
		}
		newCount++
		if candidate == nil || fetched[i].CreatedAt.After(candidate.CreatedAt) {
			candidate = &fetched[i]
		}
	}

	if candidate == nil {
		return 0
	}
	if candidate.Sender.ID == e.session.Current().ID {
		// Never alert a user about their own message.
		return newCount
	}

	e.send(AlertMsg{
		Sender:  candidate.Sender.Name,
		Message: candidate.Message,
	})
	return newCount
}

// invalidate ends the session through the store's logout contract and
// notifies the UI. The engine never mutates the credential directly.
func (e *Engine) invalidate() {
	if err := e.session.Logout(); err != nil {
		e.logger.Error("logout failed during invalidation", "error", err)
	}
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	e.send(SessionExpiredMsg{})
}

// send delivers a message to the UI without blocking the poll loop.
func (e *Engine) send(msg tea.Msg) {
	select {
	case e.eventCh <- msg:
	default:
	}
}
