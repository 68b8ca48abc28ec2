package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/IncidentBoard/internal/models"
)

func TestBoard_EndToEnd(t *testing.T) {
	kv := newMemKV()
	board := NewBoard(kv, zap.NewNop())
	ctx := context.Background()

	_, err := board.Register(ctx, RegisterInput{
		LastName:  "Doe",
		FirstName: "Jane",
		Program:   "CS",
		Matricule: "M1",
		Email:     "a@x.com",
		Password:  "pw",
	})
	require.NoError(t, err)

	sess, err := board.Login(ctx, "M1", false)
	require.NoError(t, err)
	assert.Equal(t, "M1", sess.Matricule)
	assert.Equal(t, "Jane Doe", board.DisplayName())

	incident, err := board.SubmitIncident(ctx, SubmitInput{
		Title:       "Leak",
		Category:    "Plumbing",
		Description: "Water on the floor",
		Urgency:     models.UrgencyHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", incident.ReportedBy)

	require.NoError(t, board.Logout(ctx))
	assert.Equal(t, AnonymousName, board.DisplayName())

	// Submissions without a session are attributed to the anonymous name.
	incident, err = board.SubmitIncident(ctx, SubmitInput{
		Title:       "Broken window",
		Category:    "Carpentry",
		Description: "Second floor hallway",
		Urgency:     models.UrgencyLow,
	})
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, incident.ReportedBy)

	incidents, err := board.ListIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "Broken window", incidents[0].Title)
	assert.Equal(t, "Leak", incidents[1].Title)
}

func TestBoard_SessionSurvivesRestart(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	first := NewBoard(kv, zap.NewNop())
	_, err := first.Register(ctx, RegisterInput{
		LastName:  "Doe",
		FirstName: "Jane",
		Program:   "CS",
		Matricule: "M1",
		Email:     "a@x.com",
		Password:  "pw",
	})
	require.NoError(t, err)
	_, err = first.Login(ctx, "M1", false)
	require.NoError(t, err)

	// A new board over the same store restores the identity.
	second := NewBoard(kv, zap.NewNop())
	require.NoError(t, second.Restore(ctx))
	assert.Equal(t, "Jane Doe", second.DisplayName())
}
