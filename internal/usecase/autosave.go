package usecase

import (
	"context"
	"sync"
	"time"

	"resume-builder/internal/model"

	"github.com/sirupsen/logrus"
)

const DefaultAutosaveWindow = time.Second

// Autosave pushes the whole document to the Repository once edits have been
// quiet for Window. Every change restarts the window, so intermediate states
// are never sent. Failures are logged and dropped; there is no retry.
type Autosave struct {
	store      *Store
	repo       Repository
	identity   IdentityResolver
	nav        Navigator
	window     time.Duration
	signInPath string
	now        func() time.Time
	log        *logrus.Entry

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool

	// held for the duration of one send so sends of a session never overlap
	sendMu sync.Mutex
}

type AutosaveConfig struct {
	Window     time.Duration
	SignInPath string
	Now        func() time.Time
}

func NewAutosave(store *Store, repo Repository, identity IdentityResolver, nav Navigator, cfg AutosaveConfig, log *logrus.Entry) *Autosave {
	if cfg.Window <= 0 {
		cfg.Window = DefaultAutosaveWindow
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/sign-in"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Autosave{
		store:      store,
		repo:       repo,
		identity:   identity,
		nav:        nav,
		window:     cfg.Window,
		signInPath: cfg.SignInPath,
		now:        cfg.Now,
		log:        log,
	}
}

// Observe is the Store observer. It (re)starts the debounce window.
func (a *Autosave) Observe(ch Change) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.gen++
	gen := a.gen
	a.pending = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.window, func() { a.fire(gen) })
	a.log.WithFields(logrus.Fields{"slice": ch.Slice, "revision": ch.Revision}).Trace("autosave: window restarted")
}

// Pending reports whether a window is open and not yet sent.
func (a *Autosave) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Flush sends a pending window now instead of waiting for it to elapse.
func (a *Autosave) Flush(ctx context.Context) {
	a.mu.Lock()
	if !a.pending || a.stopped {
		a.mu.Unlock()
		return
	}
	a.cancelLocked()
	a.mu.Unlock()

	a.save(ctx)
}

// Stop cancels any pending window and ignores later changes.
func (a *Autosave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.stopped = true
}

func (a *Autosave) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	// a timer that already fired sees a newer generation and backs off
	a.gen++
	a.pending = false
}

func (a *Autosave) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.stopped {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.pending = false
	a.mu.Unlock()

	a.save(context.Background())
}

func (a *Autosave) save(ctx context.Context) {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()

	doc := a.store.Document()

	id, ok := a.identity.CurrentIdentity(ctx)
	if !ok {
		a.log.Info("autosave: no signed-in user, redirecting to sign-in")
		a.nav.RedirectTo(a.signInPath)
		return
	}

	log := a.log.WithField("identity", id)
	if err := a.repo.Upsert(ctx, model.NewRecord(id, doc, a.now())); err != nil {
		log.WithError(err).Error("autosave: saving resume failed")
		return
	}
	log.Debug("autosave: resume saved")
}
