package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
)

// AnonymousName is the display name used whenever no identity may be shown.
const AnonymousName = "Anonymous"

// UserFinder resolves registered users by matricule.
type UserFinder interface {
	// FindByMatricule returns the user with the given matricule,
	// or ErrNotFound if no such user is registered.
	FindByMatricule(ctx context.Context, matricule string) (models.User, error)
}

// SessionManager owns the single active session slot. It keeps the current
// session in memory and mirrors every change to the store, so a restart
// restores the same identity via Restore.
type SessionManager struct {
	finder UserFinder
	kv     repository.KV
	log    *zap.Logger

	mu      sync.Mutex
	current *models.Session
}

// NewSessionManager constructs a SessionManager. finder is normally the
// IdentityStore sharing the same underlying store.
func NewSessionManager(finder UserFinder, kv repository.KV, log *zap.Logger) *SessionManager {
	return &SessionManager{finder: finder, kv: kv, log: log}
}

// Restore loads a previously persisted session, if any. An absent session
// is not an error; the board simply starts unauthenticated.
func (m *SessionManager) Restore(ctx context.Context) error {
	raw, ok, err := m.kv.Get(ctx, repository.SessionKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()
	return nil
}

// Login resolves the matricule and makes the user the sole active session,
// overwriting any prior one. anonymous is the per-login override: when set,
// this session displays as anonymous regardless of the stored preference.
func (m *SessionManager) Login(ctx context.Context, matricule string, anonymous bool) (models.Session, error) {
	user, err := m.finder.FindByMatricule(ctx, matricule)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{User: user, SessionAnonymous: anonymous}
	raw, err := json.Marshal(sess)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Put(ctx, repository.SessionKey, raw); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()

	m.log.Info("user logged in", zap.String("matricule", matricule), zap.Bool("anonymous", anonymous))
	return sess, nil
}

// Logout clears the active session from memory and from the store.
// Logging out with no active session is a no-op.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.kv.Delete(ctx, repository.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the active session, if any.
func (m *SessionManager) Current() (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// DisplayName resolves the name shown on submissions: AnonymousName when
// there is no session or when either the stored preference or the session
// override requests anonymity, otherwise "FirstName LastName".
func (m *SessionManager) DisplayName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return AnonymousName
	}
	if m.current.Anonymous || m.current.SessionAnonymous {
		return AnonymousName
	}
	return m.current.FirstName + " " + m.current.LastName
}
