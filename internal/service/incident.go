package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
)

// MaxIncidents caps the retained log. Submitting beyond the cap silently
// evicts the oldest entry.
const MaxIncidents = 100

// IncidentLog is the bounded, newest-first log of submitted reports.
// Entries are write-once; eviction at the cap is the only form of removal.
type IncidentLog struct {
	kv  repository.KV
	log *zap.Logger
}

// NewIncidentLog constructs an IncidentLog over the given store.
func NewIncidentLog(kv repository.KV, log *zap.Logger) *IncidentLog {
	return &IncidentLog{kv: kv, log: log}
}

// SubmitInput carries the fields of a new report. All fields are required.
type SubmitInput struct {
	Title       string
	Category    string
	Description string
	Urgency     models.Urgency
}

// FilterQuery selects a subset of the log. An empty SearchText matches
// everything; an empty Category disables the category predicate.
type FilterQuery struct {
	// SearchText is matched case-insensitively as a substring of the
	// title, description, or category.
	SearchText string
	// Category, when non-empty, must equal the report's category exactly.
	Category string
}

// Submit validates the report, stamps it, prepends it to the log, and
// persists the log truncated to the most recent MaxIncidents entries.
// reportedBy is the display name resolved by the caller at submission time.
func (l *IncidentLog) Submit(ctx context.Context, in SubmitInput, reportedBy string) (models.Incident, error) {
	switch {
	case in.Title == "":
		return models.Incident{}, fmt.Errorf("%w: title is required", ErrValidation)
	case in.Category == "":
		return models.Incident{}, fmt.Errorf("%w: category is required", ErrValidation)
	case in.Description == "":
		return models.Incident{}, fmt.Errorf("%w: description is required", ErrValidation)
	case !in.Urgency.Valid():
		return models.Incident{}, fmt.Errorf("%w: urgency must be one of %s, %s, %s",
			ErrValidation, models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh)
	}

	incident := models.Incident{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Urgency:     in.Urgency,
		ReportedBy:  reportedBy,
		SubmittedAt: time.Now().UTC(),
	}

	incidents, err := l.LoadAll(ctx)
	if err != nil {
		return models.Incident{}, err
	}
	incidents = append([]models.Incident{incident}, incidents...)
	if len(incidents) > MaxIncidents {
		incidents = incidents[:MaxIncidents]
	}
	if err := l.save(ctx, incidents); err != nil {
		return models.Incident{}, err
	}

	l.log.Info("incident submitted",
		zap.String("title", incident.Title),
		zap.String("urgency", string(incident.Urgency)),
	)
	return incident, nil
}

// LoadAll returns the persisted log, newest first. An absent key yields an
// empty slice.
func (l *IncidentLog) LoadAll(ctx context.Context) ([]models.Incident, error) {
	raw, ok, err := l.kv.Get(ctx, repository.IncidentsKey)
	if err != nil {
		return nil, fmt.Errorf("load incidents: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var incidents []models.Incident
	if err := json.Unmarshal(raw, &incidents); err != nil {
		return nil, fmt.Errorf("decode incidents: %w", err)
	}
	return incidents, nil
}

// Filter returns the reports matching the query, preserving the log's
// newest-first order. The underlying log is never mutated.
func (l *IncidentLog) Filter(ctx context.Context, q FilterQuery) ([]models.Incident, error) {
	incidents, err := l.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(q.SearchText)
	matched := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(inc.Title), search) ||
			strings.Contains(strings.ToLower(inc.Description), search) ||
			strings.Contains(strings.ToLower(inc.Category), search)
		matchesCategory := q.Category == "" || inc.Category == q.Category
		if matchesSearch && matchesCategory {
			matched = append(matched, inc)
		}
	}
	return matched, nil
}

func (l *IncidentLog) save(ctx context.Context, incidents []models.Incident) error {
	raw, err := json.Marshal(incidents)
	if err != nil {
		return fmt.Errorf("encode incidents: %w", err)
	}
	if err := l.kv.Put(ctx, repository.IncidentsKey, raw); err != nil {
		return fmt.Errorf("save incidents: %w", err)
	}
	return nil
}
