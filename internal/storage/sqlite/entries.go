package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func (s *Store) GetEntry(ctx context.Context, date string) (models.DailyEntry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.EntryColumns+" FROM daily_entries WHERE date = ?", date)
	entry, err := storage.ScanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyEntry{}, fmt.Errorf("entry for %s: %w", date, storage.ErrNotFound)
	}
	return entry, err
}

func (s *Store) UpsertEntry(ctx context.Context, entry models.DailyEntry) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", storage.EntryColumnCount), ", ")
	query := `INSERT INTO daily_entries (` + storage.EntryColumns + `)
		VALUES (` + placeholders + `)
		ON CONFLICT (date) DO UPDATE SET
			morning_done = excluded.morning_done,
			midday_done = excluded.midday_done,
			evening_done = excluded.evening_done,
			bedtime_done = excluded.bedtime_done,
			focus = excluded.focus,
			energy = excluded.energy,
			health = excluded.health,
			emotional_state = excluded.emotional_state,
			burnout = excluded.burnout,
			anger_frequency = excluded.anger_frequency,
			mood_swings = excluded.mood_swings,
			money_stress = excluded.money_stress,
			job_applications = excluded.job_applications,
			study_hours = excluded.study_hours,
			gym = excluded.gym,
			morning_note = excluded.morning_note,
			midday_note = excluded.midday_note,
			evening_note = excluded.evening_note,
			bedtime_note = excluded.bedtime_note,
			source = excluded.source,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, storage.EntryArgs(entry)...); err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", entry.Date, err)
	}
	return nil
}

func (s *Store) GetEntries(ctx context.Context, startDate, endDate string) ([]models.DailyEntry, error) {
	query := "SELECT " + storage.EntryColumns + " FROM daily_entries WHERE 1=1"
	var args []any
	if startDate != "" {
		query += " AND date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND date <= ?"
		args = append(args, endDate)
	}
	query += " ORDER BY date"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		entry, err := storage.ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
