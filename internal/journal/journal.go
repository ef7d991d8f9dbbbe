// Package journal records daily check-ins and serves the history the progress engine runs on.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/storage"
	"github.com/julianstephens/growthdash/internal/utils"
)

var (
	ErrEntryLocked = errors.New("entry is locked: past days cannot be edited")
	ErrFutureDate  = errors.New("cannot record a check-in for a future date")
)

// Repository is the slice of storage.Provider the journal needs
type Repository interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	GetEntry(ctx context.Context, date string) (models.DailyEntry, error)
	UpsertEntry(ctx context.Context, entry models.DailyEntry) error
	GetEntries(ctx context.Context, startDate, endDate string) ([]models.DailyEntry, error)
}

// Details carries the optional per-day fields. Nil pointers and empty enums leave the stored value alone.
type Details struct {
	Focus           *int
	Energy          *int
	Health          *int
	EmotionalState  *int
	Burnout         models.BurnoutLevel
	AngerFrequency  models.AngerFrequency
	MoodSwings      models.MoodSwings
	MoneyStress     models.MoneyStress
	JobApplications *int
	StudyHours      *float64
	Gym             *bool
}

// SessionInput is one session write. An empty Date means today in the configured timezone.
type SessionInput struct {
	Date    string
	Session models.Session
	Done    bool
	Note    *string // nil keeps the existing note; empty clears it
	Details Details
	Source  constants.RecordSource
}

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
	}
}

// Today returns the current date in the user's timezone along with the settings used to decide it
func (s *Service) Today(ctx context.Context, now time.Time) (string, models.Settings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return "", models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	today, err := utils.DateInTimezone(now, settings.Timezone)
	if err != nil {
		return "", models.Settings{}, err
	}
	return today, settings, nil
}

// RecordSession marks a session done (or undone) for today, creating the day's entry on first write.
// Sessions may be recorded in any order.
func (s *Service) RecordSession(ctx context.Context, in SessionInput, now time.Time) (models.DailyEntry, error) {
	if !in.Session.Valid() {
		return models.DailyEntry{}, fmt.Errorf("invalid session %d", int(in.Session))
	}

	entry, err := s.mutate(ctx, in.Date, in.Source, now, func(e *models.DailyEntry) {
		e.Sessions[in.Session] = in.Done
		if in.Note != nil {
			e.Notes[in.Session] = *in.Note
		}
		applyDetails(e, in.Details)
	})
	if err != nil {
		return models.DailyEntry{}, err
	}

	logger.Info("Session recorded", "date", entry.Date, "session", in.Session, "done", in.Done,
		"completion", progress.CompletionPercentage(entry), "source", in.Source)
	return entry, nil
}

// UpdateDetails writes ratings and counters for today without touching session flags
func (s *Service) UpdateDetails(ctx context.Context, date string, details Details, source constants.RecordSource, now time.Time) (models.DailyEntry, error) {
	entry, err := s.mutate(ctx, date, source, now, func(e *models.DailyEntry) {
		applyDetails(e, details)
	})
	if err != nil {
		return models.DailyEntry{}, err
	}
	logger.Info("Entry details updated", "date", entry.Date, "source", source)
	return entry, nil
}

func (s *Service) mutate(ctx context.Context, date string, source constants.RecordSource, now time.Time, apply func(*models.DailyEntry)) (models.DailyEntry, error) {
	today, _, err := s.Today(ctx, now)
	if err != nil {
		return models.DailyEntry{}, err
	}
	if date == "" {
		date = today
	}
	if !utils.ValidateDateFormat(date) {
		return models.DailyEntry{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	// YYYY-MM-DD strings order chronologically
	switch {
	case date < today:
		return models.DailyEntry{}, fmt.Errorf("%w (%s)", ErrEntryLocked, date)
	case date > today:
		return models.DailyEntry{}, fmt.Errorf("%w (%s)", ErrFutureDate, date)
	}

	entry, err := s.repo.GetEntry(ctx, date)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		entry = models.DailyEntry{ID: s.newID(), Date: date, CreatedAt: now}
		logger.Debug("Creating entry", "date", date)
	case err != nil:
		return models.DailyEntry{}, fmt.Errorf("failed to load entry for %s: %w", date, err)
	}

	apply(&entry)
	entry.Source = source
	entry.UpdatedAt = now

	if err := entry.Validate(); err != nil {
		return models.DailyEntry{}, err
	}
	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return models.DailyEntry{}, err
	}
	return entry, nil
}

func applyDetails(e *models.DailyEntry, d Details) {
	if d.Focus != nil {
		e.Focus = d.Focus
	}
	if d.Energy != nil {
		e.Energy = d.Energy
	}
	if d.Health != nil {
		e.Health = d.Health
	}
	if d.EmotionalState != nil {
		e.EmotionalState = d.EmotionalState
	}
	if d.Burnout != "" {
		e.Burnout = d.Burnout
	}
	if d.AngerFrequency != "" {
		e.AngerFrequency = d.AngerFrequency
	}
	if d.MoodSwings != "" {
		e.MoodSwings = d.MoodSwings
	}
	if d.MoneyStress != "" {
		e.MoneyStress = d.MoneyStress
	}
	if d.JobApplications != nil {
		e.JobApplications = *d.JobApplications
	}
	if d.StudyHours != nil {
		e.StudyHours = *d.StudyHours
	}
	if d.Gym != nil {
		e.Gym = *d.Gym
	}
}

// History returns every entry dated on or before asOf, oldest first
func (s *Service) History(ctx context.Context, asOf string) ([]models.DailyEntry, error) {
	entries, err := s.repo.GetEntries(ctx, "", asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// Snapshot computes progress as of today using the configured sprint
func (s *Service) Snapshot(ctx context.Context, now time.Time) (progress.Snapshot, error) {
	o, err := s.Overview(ctx, now, 0, 0)
	if err != nil {
		return progress.Snapshot{}, err
	}
	return o.Snapshot, nil
}

// Overview bundles everything a dashboard renders for today
type Overview struct {
	Date     string
	Settings models.Settings
	Today    models.DailyEntry
	HasToday bool
	Snapshot progress.Snapshot
	History  []models.DailyEntry // oldest first, through Date
	Heatmap  []progress.HeatmapCell
	Trend    []progress.WeekBucket
}

// Overview reads settings and history once and derives the snapshot, a heatmap of heatmapDays
// and a trend of trendWeeks.
func (s *Service) Overview(ctx context.Context, now time.Time, heatmapDays, trendWeeks int) (Overview, error) {
	today, settings, err := s.Today(ctx, now)
	if err != nil {
		return Overview{}, err
	}
	history, err := s.History(ctx, today)
	if err != nil {
		return Overview{}, err
	}

	snap, err := progress.Compute(history, today, progress.Options{
		SprintStart:      settings.SprintStart,
		SprintLengthDays: settings.SprintLengthDays,
	})
	if err != nil {
		return Overview{}, fmt.Errorf("failed to compute progress: %w", err)
	}

	o := Overview{Date: today, Settings: settings, Snapshot: snap, History: history}
	if n := len(history); n > 0 && history[n-1].Date == today {
		o.Today = history[n-1]
		o.HasToday = true
	} else {
		o.Today = models.DailyEntry{Date: today}
	}

	if heatmapDays > 0 {
		if o.Heatmap, err = progress.Heatmap(history, today, heatmapDays); err != nil {
			return Overview{}, err
		}
	}
	if trendWeeks > 0 {
		if o.Trend, err = progress.WeeklyTrend(history, today, trendWeeks); err != nil {
			return Overview{}, err
		}
	}
	return o, nil
}
