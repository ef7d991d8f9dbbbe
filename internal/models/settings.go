package models

import (
	"fmt"

	"github.com/julianstephens/growthdash/internal/utils"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone                   string   `json:"timezone"`                      // IANA timezone name or "Local"
	SprintStart                string   `json:"sprint_start"`                  // YYYY-MM-DD, empty means the first entry date
	SprintLengthDays           int      `json:"sprint_length_days"`            // goal sprint length in days
	NotificationsEnabled       bool     `json:"notifications_enabled"`         // master switch for every channel
	MorningTime                string   `json:"morning_time"`                  // HH:MM reminder for the morning session
	MiddayTime                 string   `json:"midday_time"`                   // HH:MM reminder for the midday session
	EveningTime                string   `json:"evening_time"`                  // HH:MM reminder for the evening session
	BedtimeTime                string   `json:"bedtime_time"`                  // HH:MM reminder for the bedtime session
	AccountabilityTime         string   `json:"accountability_time"`           // HH:MM daily accountability check
	NotificationGracePeriodMin int      `json:"notification_grace_period_min"` // how late a trigger may still fire
	Channels                   []string `json:"channels"`                      // enabled channel names
	EmailTo                    string   `json:"email_to"`
	EmailFrom                  string   `json:"email_from"`
	SMTPHost                   string   `json:"smtp_host"`
	SMTPPort                   int      `json:"smtp_port"`
	SMTPUsername               string   `json:"smtp_username"`
	SMTPTLS                    bool     `json:"smtp_tls"`
	WebhookURL                 string   `json:"webhook_url"`
	TelegramChatID             string   `json:"telegram_chat_id"`
	DiscordWebhookURL          string   `json:"discord_webhook_url"`
	RedisAddr                  string   `json:"redis_addr"` // optional; enables the Redis dispatch ledger
}

// SessionTime returns the configured reminder time for a session
func (s Settings) SessionTime(session Session) string {
	switch session {
	case SessionMorning:
		return s.MorningTime
	case SessionMidday:
		return s.MiddayTime
	case SessionEvening:
		return s.EveningTime
	case SessionBedtime:
		return s.BedtimeTime
	}
	return ""
}

// ChannelEnabled reports whether the named channel is in the enabled list
func (s Settings) ChannelEnabled(name string) bool {
	for _, c := range s.Channels {
		if c == name {
			return true
		}
	}
	return false
}

// Validate reports the first setting that would break check-ins or notifications
func (s Settings) Validate() error {
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if s.SprintStart != "" && !utils.ValidateDateFormat(s.SprintStart) {
		return fmt.Errorf("invalid sprint start %q (expected YYYY-MM-DD)", s.SprintStart)
	}
	if s.SprintLengthDays < 0 {
		return fmt.Errorf("sprint length cannot be negative: %d", s.SprintLengthDays)
	}
	times := map[string]string{"accountability_time": s.AccountabilityTime}
	for _, session := range AllSessions {
		times[session.String()+"_time"] = s.SessionTime(session)
	}
	for key, v := range times {
		if !utils.ValidateTimeFormat(v) {
			return fmt.Errorf("invalid %s %q (expected HH:MM)", key, v)
		}
	}
	if s.NotificationGracePeriodMin < 0 {
		return fmt.Errorf("grace period cannot be negative: %d", s.NotificationGracePeriodMin)
	}
	// reminder windows do not wrap past midnight, when a new day starts
	for key, v := range times {
		at, _ := utils.ParseTimeToMinutes(v)
		if at+s.NotificationGracePeriodMin >= 24*60 {
			return fmt.Errorf("%s %s plus the %d minute grace period runs past midnight", key, v, s.NotificationGracePeriodMin)
		}
	}
	return nil
}
