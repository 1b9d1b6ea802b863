package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one editing session: a document, its editors, the step
// position and the autosave loop bound to the session's identity.
type Session struct {
	ID       string
	Store    *Store
	Editors  *Editors
	Steps    *Sequencer
	Autosave *Autosave
	Redirect *PendingRedirect

	identity IdentityResolver
	repo     Repository
	exporter *Exporter
	newID    IDGenerator
	log      *logrus.Entry

	mu       sync.Mutex
	lastSeen time.Time
}

type SessionDeps struct {
	Repo     Repository
	Exporter *Exporter
	Autosave AutosaveConfig
	NewID    IDGenerator
	Log      *logrus.Entry
}

// NewSession builds an empty session. Call Hydrate to load the stored
// document.
func NewSession(id string, identity IdentityResolver, deps SessionDeps) *Session {
	if identity == nil {
		identity = AnonymousIdentity{}
	}
	if deps.NewID == nil {
		deps.NewID = NewEntityID
	}
	log := deps.Log.WithField("session_id", id)

	store := NewStore(domain.ResumeDocument{})
	redirect := &PendingRedirect{}
	autosave := NewAutosave(store, deps.Repo, identity, redirect, deps.Autosave, log)
	store.Subscribe(autosave.Observe)

	return &Session{
		ID:       id,
		Store:    store,
		Editors:  NewEditors(store, deps.NewID),
		Steps:    NewSequencer(),
		Autosave: autosave,
		Redirect: redirect,
		identity: identity,
		repo:     deps.Repo,
		exporter: deps.Exporter,
		newID:    deps.NewID,
		log:      log,
		lastSeen: time.Now(),
	}
}

// Hydrate loads the stored document of the current identity into the
// Store. Nobody signed in, nothing stored and a failing load all leave the
// document as it is. Edits made before Hydrate returns can be overwritten.
func (s *Session) Hydrate(ctx context.Context) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return
	}
	log := s.log.WithField("identity", id)

	rec, err := s.repo.Load(ctx, id)
	if err != nil {
		log.WithError(err).Error("hydrate: loading resume failed")
		return
	}
	if rec == nil {
		log.Debug("hydrate: no stored resume")
		return
	}

	doc := rec.Document()
	ensureIDs(&doc, s.newID)
	s.Store.ReplaceAll(doc)
	log.Debug("hydrate: resume loaded")
}

// Identity resolves the session's current user.
func (s *Session) Identity(ctx context.Context) (domain.Identity, bool) {
	return s.identity.CurrentIdentity(ctx)
}

func (s *Session) IdentityResolver() IdentityResolver { return s.identity }

func (s *Session) Preview() render.Preview {
	return render.Build(s.Store.Document())
}

func (s *Session) Checks() []StepReport {
	return CheckAll(s.Store.Document())
}

// Export prints the document as it is right now.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	if s.exporter == nil {
		return nil, errors.New("export is not configured")
	}
	owner, _ := s.identity.CurrentIdentity(ctx)
	return s.exporter.Export(ctx, owner, s.Store.Document())
}

// Close sends a pending autosave window and stops the loop.
func (s *Session) Close(ctx context.Context) {
	s.Autosave.Flush(ctx)
	s.Autosave.Stop()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ensureIDs gives every entity a non-empty id that is unique within its
// slice. Stored records from older clients may lack them.
func ensureIDs(doc *domain.ResumeDocument, newID IDGenerator) {
	doc.Education = uniqueIDs(doc.Education, newID, func(e *domain.Education, id string) { e.ID = id })
	doc.Experience = uniqueIDs(doc.Experience, newID, func(e *domain.Experience, id string) { e.ID = id })
	doc.Skills = uniqueIDs(doc.Skills, newID, func(e *domain.Skill, id string) { e.ID = id })
	doc.Projects = uniqueIDs(doc.Projects, newID, func(e *domain.Project, id string) { e.ID = id })
	doc.Awards = uniqueIDs(doc.Awards, newID, func(e *domain.Award, id string) { e.ID = id })
}

func uniqueIDs[T entity](items []T, newID IDGenerator, setID func(*T, string)) []T {
	seen := make(map[string]bool, len(items))
	for i := range items {
		id := items[i].EntityID()
		for id == "" || seen[id] {
			id = newID()
		}
		if id != items[i].EntityID() {
			setID(&items[i], id)
		}
		seen[id] = true
	}
	return items
}

// Manager keeps the live sessions of the server.
type Manager struct {
	deps SessionDeps
	now  func() time.Time
	log  *logrus.Entry

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(deps SessionDeps) *Manager {
	return &Manager{
		deps:     deps,
		now:      time.Now,
		log:      deps.Log,
		sessions: make(map[string]*Session),
	}
}

// Start creates a session for identity and hydrates it before anyone can
// reach it by id.
func (m *Manager) Start(ctx context.Context, identity IdentityResolver) *Session {
	s := NewSession(uuid.New().String(), identity, m.deps)
	s.Hydrate(ctx)
	s.touch(m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.log.Info("session started")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// End closes the session and forgets it.
func (m *Manager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close(ctx)
	s.log.Info("session ended")
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Expire ends sessions that have not been used for idle. It returns how many
// were ended.
func (m *Manager) Expire(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close(ctx)
		s.log.Info("session expired")
	}
	return len(stale)
}

// CloseAll ends every session. Used on shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		s.Close(ctx)
	}
	m.log.WithField("sessions", len(all)).Info("sessions closed")
}
