package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage"
)

// upsertEntryQuery is built once from the shared column list
var upsertEntryQuery = func() string {
	placeholders := make([]string, storage.EntryColumnCount)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return `INSERT INTO daily_entries (` + storage.EntryColumns + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (date) DO UPDATE SET
			morning_done = EXCLUDED.morning_done,
			midday_done = EXCLUDED.midday_done,
			evening_done = EXCLUDED.evening_done,
			bedtime_done = EXCLUDED.bedtime_done,
			focus = EXCLUDED.focus,
			energy = EXCLUDED.energy,
			health = EXCLUDED.health,
			emotional_state = EXCLUDED.emotional_state,
			burnout = EXCLUDED.burnout,
			anger_frequency = EXCLUDED.anger_frequency,
			mood_swings = EXCLUDED.mood_swings,
			money_stress = EXCLUDED.money_stress,
			job_applications = EXCLUDED.job_applications,
			study_hours = EXCLUDED.study_hours,
			gym = EXCLUDED.gym,
			morning_note = EXCLUDED.morning_note,
			midday_note = EXCLUDED.midday_note,
			evening_note = EXCLUDED.evening_note,
			bedtime_note = EXCLUDED.bedtime_note,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at`
}()

var _ storage.Provider = (*Store)(nil)

func (s *Store) GetEntry(ctx context.Context, date string) (models.DailyEntry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.EntryColumns+" FROM daily_entries WHERE date = $1", date)
	entry, err := storage.ScanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyEntry{}, fmt.Errorf("entry for %s: %w", date, storage.ErrNotFound)
	}
	return entry, err
}

func (s *Store) UpsertEntry(ctx context.Context, entry models.DailyEntry) error {
	if _, err := s.db.ExecContext(ctx, upsertEntryQuery, storage.EntryArgs(entry)...); err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", entry.Date, err)
	}
	return nil
}

func (s *Store) GetEntries(ctx context.Context, startDate, endDate string) ([]models.DailyEntry, error) {
	query := "SELECT " + storage.EntryColumns + " FROM daily_entries WHERE TRUE"
	var args []any
	if startDate != "" {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
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
