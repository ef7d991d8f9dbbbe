package sqlite

import (
	"context"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage"
)

func (s *Store) HasNotification(ctx context.Context, date, kind, channel string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM notifications WHERE date = ? AND kind = ? AND channel = ?",
		date, kind, channel,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordNotification stores a ledger row; recording the same (date, kind, channel) twice is a no-op.
func (s *Store) RecordNotification(ctx context.Context, record models.NotificationRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO notifications (id, date, kind, channel, sent_at) VALUES (?, ?, ?, ?, ?)",
		record.ID, record.Date, record.Kind, record.Channel, storage.FormatTimestamp(record.SentAt),
	)
	return err
}

func (s *Store) GetNotifications(ctx context.Context, date string) ([]models.NotificationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, kind, channel, sent_at FROM notifications WHERE date = ? ORDER BY sent_at, channel",
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.NotificationRecord
	for rows.Next() {
		r, err := storage.ScanNotification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
