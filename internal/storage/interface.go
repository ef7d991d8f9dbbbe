package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/growthdash/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Daily entries
	GetEntry(ctx context.Context, date string) (models.DailyEntry, error)
	// UpsertEntry inserts the entry or replaces the row for its date, keeping the original ID and created_at.
	UpsertEntry(ctx context.Context, entry models.DailyEntry) error
	// GetEntries returns entries with startDate <= date <= endDate ordered by date.
	// An empty bound is open.
	GetEntries(ctx context.Context, startDate, endDate string) ([]models.DailyEntry, error)

	// Notification ledger
	HasNotification(ctx context.Context, date, kind, channel string) (bool, error)
	RecordNotification(ctx context.Context, record models.NotificationRecord) error
	GetNotifications(ctx context.Context, date string) ([]models.NotificationRecord, error)

	// Utils
	GetConfigPath() string
}
