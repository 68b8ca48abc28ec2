// Package models defines the core data structures for users, sessions and incidents.
package models

import "time"

// User represents a registered reporter.
type User struct {
	// ID is the unique, time-ordered identifier assigned at registration.
	ID string `json:"id"`
	// LastName is the user's family name.
	LastName string `json:"lastName"`
	// FirstName is the user's given name.
	FirstName string `json:"firstName"`
	// Program is the study program the user belongs to.
	Program string `json:"program"`
	// Matricule is the institutional identifier used to log in. Unique.
	Matricule string `json:"matricule"`
	// Anonymous requests that submissions always display as anonymous.
	Anonymous bool `json:"anonymous"`
	// Email is the user's contact address. Unique.
	Email string `json:"email"`
	// PasswordHash is the bcrypt digest of the user's password.
	// It is stored at registration and never displayed.
	PasswordHash string `json:"passwordHash"`
	// JoinedAt is the registration timestamp.
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the active identity: the logged-in user plus a per-login
// anonymity override. At most one session exists at a time.
type Session struct {
	User
	// SessionAnonymous forces anonymous display for this login only,
	// regardless of the stored preference.
	SessionAnonymous bool `json:"sessionAnonymous"`
}

// Incident is a single submitted report. Reports are write-once: the log
// never updates or deletes an entry, old entries only fall off the cap.
type Incident struct {
	// Title is a short summary of the incident.
	Title string `json:"title"`
	// Category classifies the incident (free-form, e.g. "Plumbing").
	Category string `json:"category"`
	// Description is the full report text.
	Description string `json:"description"`
	// Urgency is the severity tag.
	Urgency Urgency `json:"urgency"`
	// ReportedBy is the display name resolved at submission time.
	ReportedBy string `json:"reportedBy"`
	// SubmittedAt is the submission timestamp.
	SubmittedAt time.Time `json:"submittedAt"`
}

// Urgency is the ordinal severity of an incident.
type Urgency string

const (
	// UrgencyLow marks incidents that can wait.
	UrgencyLow Urgency = "Low"
	// UrgencyMedium marks incidents that should be handled soon.
	UrgencyMedium Urgency = "Medium"
	// UrgencyHigh marks incidents needing immediate attention.
	UrgencyHigh Urgency = "High"
)

// Valid reports whether u is one of the known urgency levels.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}
