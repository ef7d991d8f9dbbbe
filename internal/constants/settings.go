package constants

const (
	// General Settings
	SettingTimezone         = "timezone"
	SettingSprintStart      = "sprint_start"
	SettingSprintLengthDays = "sprint_length_days"

	// Notification Settings
	SettingNotificationsEnabled       = "notifications_enabled"
	SettingMorningTime                = "morning_time"
	SettingMiddayTime                 = "midday_time"
	SettingEveningTime                = "evening_time"
	SettingBedtimeTime                = "bedtime_time"
	SettingAccountabilityTime         = "accountability_time"
	SettingNotificationGracePeriodMin = "notification_grace_period_min"
	SettingChannels                   = "channels"

	// Channel Settings
	SettingEmailTo           = "email_to"
	SettingEmailFrom         = "email_from"
	SettingSMTPHost          = "smtp_host"
	SettingSMTPPort          = "smtp_port"
	SettingSMTPUsername      = "smtp_username"
	SettingSMTPTLS           = "smtp_tls"
	SettingWebhookURL        = "webhook_url"
	SettingTelegramChatID    = "telegram_chat_id"
	SettingDiscordWebhookURL = "discord_webhook_url"
	SettingRedisAddr         = "redis_addr"

	// Default Settings Values
	DefaultTimezone                   = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled       = true
	DefaultMorningTime                = "07:00"
	DefaultMiddayTime                 = "12:00"
	DefaultEveningTime                = "18:00"
	DefaultBedtimeTime                = "22:00"
	DefaultAccountabilityTime         = "21:30"
	DefaultNotificationGracePeriodMin = 10
	DefaultChannels                   = "push"
	DefaultSMTPPort                   = 587
	DefaultSMTPTLS                    = true
)
