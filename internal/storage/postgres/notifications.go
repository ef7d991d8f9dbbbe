package postgres

import (
	"context"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage"
)

func (s *Store) HasNotification(ctx context.Context, date, kind, channel string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM notifications WHERE date = $1 AND kind = $2 AND channel = $3)",
		date, kind, channel,
	).Scan(&exists)
	return exists, err
}

func (s *Store) RecordNotification(ctx context.Context, record models.NotificationRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, date, kind, channel, sent_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, kind, channel) DO NOTHING`,
		record.ID, record.Date, record.Kind, record.Channel, storage.FormatTimestamp(record.SentAt),
	)
	return err
}

func (s *Store) GetNotifications(ctx context.Context, date string) ([]models.NotificationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, kind, channel, sent_at FROM notifications WHERE date = $1 ORDER BY sent_at, channel",
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
