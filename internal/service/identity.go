// Package service implements the board's core logic: the user registry,
// the session and anonymity rules, and the bounded incident log. All state
// is re-read from the key-value store on access and flushed after every
// mutation, so the persisted form never diverges from memory across calls.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
)

// IdentityStore manages the registry of registered users. Users are
// append-only: there is no profile edit or delete.
type IdentityStore struct {
	kv  repository.KV
	log *zap.Logger
}

// NewIdentityStore constructs an IdentityStore over the given store.
func NewIdentityStore(kv repository.KV, log *zap.Logger) *IdentityStore {
	return &IdentityStore{kv: kv, log: log}
}

// RegisterInput carries the fields required to register a user.
// All fields except Anonymous are required.
type RegisterInput struct {
	LastName  string
	FirstName string
	Program   string
	Matricule string
	Email     string
	Password  string
	Anonymous bool
}

// Register validates the input, rejects duplicate matricules or emails,
// and persists the new user. The returned record carries the assigned ID
// and join timestamp. The password is stored only as a bcrypt digest.
func (s *IdentityStore) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	required := []struct {
		name, value string
	}{
		{"last name", in.LastName},
		{"first name", in.FirstName},
		{"program", in.Program},
		{"matricule", in.Matricule},
		{"email", in.Email},
		{"password", in.Password},
	}
	for _, field := range required {
		if field.value == "" {
			return models.User{}, fmt.Errorf("%w: %s is required", ErrValidation, field.name)
		}
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Matricule == in.Matricule || u.Email == in.Email {
			return models.User{}, ErrDuplicate
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.User{}, fmt.Errorf("generate id: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           id.String(),
		LastName:     in.LastName,
		FirstName:    in.FirstName,
		Program:      in.Program,
		Matricule:    in.Matricule,
		Anonymous:    in.Anonymous,
		Email:        in.Email,
		PasswordHash: string(hash),
		JoinedAt:     time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return models.User{}, err
	}

	s.log.Info("user registered", zap.String("matricule", user.Matricule))
	return user, nil
}

// FindByMatricule returns the user with the given matricule, or ErrNotFound.
// Matricules are unique, so at most one user can match.
func (s *IdentityStore) FindByMatricule(ctx context.Context, matricule string) (models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Matricule == matricule {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *IdentityStore) loadUsers(ctx context.Context) ([]models.User, error) {
	raw, ok, err := s.kv.Get(ctx, repository.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *IdentityStore) saveUsers(ctx context.Context, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Put(ctx, repository.UsersKey, raw); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
