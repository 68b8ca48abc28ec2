package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		LastName:  "Doe",
		FirstName: "Jane",
		Program:   "CS",
		Matricule: "M1",
		Email:     "a@x.com",
		Password:  "pw",
	}
}

func storedUsers(t *testing.T, kv *memKV) []models.User {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), repository.UsersKey)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	return users
}

func TestRegister_Success(t *testing.T) {
	kv := newMemKV()
	store := NewIdentityStore(kv, zap.NewNop())

	user, err := store.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.JoinedAt.IsZero())
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "M1", user.Matricule)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))

	require.Len(t, storedUsers(t, kv), 1)
}

func TestRegister_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"last name", func(in *RegisterInput) { in.LastName = "" }},
		{"first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"program", func(in *RegisterInput) { in.Program = "" }},
		{"matricule", func(in *RegisterInput) { in.Matricule = "" }},
		{"email", func(in *RegisterInput) { in.Email = "" }},
		{"password", func(in *RegisterInput) { in.Password = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := newMemKV()
			store := NewIdentityStore(kv, zap.NewNop())

			in := validRegisterInput()
			tc.mutate(&in)

			_, err := store.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, storedUsers(t, kv))
		})
	}
}

func TestRegister_DuplicateMatricule(t *testing.T) {
	kv := newMemKV()
	store := NewIdentityStore(kv, zap.NewNop())
	ctx := context.Background()

	_, err := store.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Email = "other@x.com"
	_, err = store.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	// The registry must be unchanged by the failed attempt.
	assert.Len(t, storedUsers(t, kv), 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	kv := newMemKV()
	store := NewIdentityStore(kv, zap.NewNop())
	ctx := context.Background()

	_, err := store.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Matricule = "M2"
	_, err = store.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, storedUsers(t, kv), 1)
}

func TestFindByMatricule(t *testing.T) {
	kv := newMemKV()
	store := NewIdentityStore(kv, zap.NewNop())
	ctx := context.Background()

	registered, err := store.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	found, err := store.FindByMatricule(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, registered, found)

	_, err = store.FindByMatricule(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
