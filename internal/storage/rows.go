package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/models"
)

// EntryColumns is the column order shared by ScanEntry and EntryArgs
const EntryColumns = `date, id, morning_done, midday_done, evening_done, bedtime_done,
	focus, energy, health, emotional_state,
	burnout, anger_frequency, mood_swings, money_stress,
	job_applications, study_hours, gym,
	morning_note, midday_note, evening_note, bedtime_note,
	source, created_at, updated_at`

// EntryColumnCount is the number of columns in EntryColumns
const EntryColumnCount = 24

// Scanner is satisfied by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// ScanEntry reads one daily_entries row selected with EntryColumns
func ScanEntry(row Scanner) (models.DailyEntry, error) {
	var (
		e                              models.DailyEntry
		focus, energy, health, emotion sql.NullInt64
		burnout, anger, mood, money    string
		source, createdAt, updatedAt   string
	)
	err := row.Scan(
		&e.Date, &e.ID,
		&e.Sessions[models.SessionMorning], &e.Sessions[models.SessionMidday],
		&e.Sessions[models.SessionEvening], &e.Sessions[models.SessionBedtime],
		&focus, &energy, &health, &emotion,
		&burnout, &anger, &mood, &money,
		&e.JobApplications, &e.StudyHours, &e.Gym,
		&e.Notes[models.SessionMorning], &e.Notes[models.SessionMidday],
		&e.Notes[models.SessionEvening], &e.Notes[models.SessionBedtime],
		&source, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.DailyEntry{}, err
	}

	e.Focus = nullIntPtr(focus)
	e.Energy = nullIntPtr(energy)
	e.Health = nullIntPtr(health)
	e.EmotionalState = nullIntPtr(emotion)
	e.Burnout = models.BurnoutLevel(burnout)
	e.AngerFrequency = models.AngerFrequency(anger)
	e.MoodSwings = models.MoodSwings(mood)
	e.MoneyStress = models.MoneyStress(money)
	e.Source = constants.RecordSource(source)

	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.DailyEntry{}, fmt.Errorf("parsing created_at for %s: %w", e.Date, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return models.DailyEntry{}, fmt.Errorf("parsing updated_at for %s: %w", e.Date, err)
	}
	return e, nil
}

// EntryArgs flattens an entry into bind arguments in EntryColumns order
func EntryArgs(e models.DailyEntry) []any {
	return []any{
		e.Date, e.ID,
		e.Sessions[models.SessionMorning], e.Sessions[models.SessionMidday],
		e.Sessions[models.SessionEvening], e.Sessions[models.SessionBedtime],
		intPtrArg(e.Focus), intPtrArg(e.Energy), intPtrArg(e.Health), intPtrArg(e.EmotionalState),
		string(e.Burnout), string(e.AngerFrequency), string(e.MoodSwings), string(e.MoneyStress),
		e.JobApplications, e.StudyHours, e.Gym,
		e.Notes[models.SessionMorning], e.Notes[models.SessionMidday],
		e.Notes[models.SessionEvening], e.Notes[models.SessionBedtime],
		string(e.Source), FormatTimestamp(e.CreatedAt), FormatTimestamp(e.UpdatedAt),
	}
}

// ScanNotification reads one notifications row (id, date, kind, channel, sent_at)
func ScanNotification(row Scanner) (models.NotificationRecord, error) {
	var r models.NotificationRecord
	var sentAt string
	if err := row.Scan(&r.ID, &r.Date, &r.Kind, &r.Channel, &sentAt); err != nil {
		return models.NotificationRecord{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, sentAt)
	if err != nil {
		return models.NotificationRecord{}, fmt.Errorf("parsing sent_at: %w", err)
	}
	r.SentAt = t
	return r, nil
}

// FormatTimestamp stores times as UTC RFC 3339 text in both backends
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func intPtrArg(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
