package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
)

// Board bundles the identity, session, and incident components behind the
// single contract the front end calls. All three share one store.
type Board struct {
	Identity  *IdentityStore
	Sessions  *SessionManager
	Incidents *IncidentLog
}

// NewBoard wires the three services over the given store.
func NewBoard(kv repository.KV, log *zap.Logger) *Board {
	identity := NewIdentityStore(kv, log)
	return &Board{
		Identity:  identity,
		Sessions:  NewSessionManager(identity, kv, log),
		Incidents: NewIncidentLog(kv, log),
	}
}

// Restore loads any persisted session. Called once at startup.
func (b *Board) Restore(ctx context.Context) error {
	return b.Sessions.Restore(ctx)
}

// Register creates a new user. See IdentityStore.Register.
func (b *Board) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	return b.Identity.Register(ctx, in)
}

// Login makes the user with the given matricule the active session.
func (b *Board) Login(ctx context.Context, matricule string, anonymous bool) (models.Session, error) {
	return b.Sessions.Login(ctx, matricule, anonymous)
}

// Logout clears the active session. Idempotent.
func (b *Board) Logout(ctx context.Context) error {
	return b.Sessions.Logout(ctx)
}

// DisplayName resolves the name shown for the active session.
func (b *Board) DisplayName() string {
	return b.Sessions.DisplayName()
}

// SubmitIncident stores a new report attributed to the current display
// name, honoring the anonymity rules at submission time.
func (b *Board) SubmitIncident(ctx context.Context, in SubmitInput) (models.Incident, error) {
	return b.Incidents.Submit(ctx, in, b.Sessions.DisplayName())
}

// ListIncidents returns the whole log, newest first.
func (b *Board) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	return b.Incidents.LoadAll(ctx)
}

// FilterIncidents returns the reports matching the query, newest first.
func (b *Board) FilterIncidents(ctx context.Context, q FilterQuery) ([]models.Incident, error) {
	return b.Incidents.Filter(ctx, q)
}
