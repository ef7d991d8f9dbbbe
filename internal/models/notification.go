package models

import "time"

// NotificationKind identifies which rule produced a notification
type NotificationKind string

const (
	KindSessionReminder NotificationKind = "session_reminder"
	KindAccountability  NotificationKind = "accountability"
	KindMilestone       NotificationKind = "milestone"
)

// NotificationRecord is a row of the dispatch ledger: one successful send of a kind on a channel for a date.
// For session reminders Kind carries the session suffix, e.g. "session_reminder:morning".
type NotificationRecord struct {
	ID      string    `json:"id"`
	Date    string    `json:"date"`
	Kind    string    `json:"kind"`
	Channel string    `json:"channel"`
	SentAt  time.Time `json:"sent_at"`
}
