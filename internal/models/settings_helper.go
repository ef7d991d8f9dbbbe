package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/growthdash/internal/constants"
)

// MapToSettings converts the key/value rows of the settings table to a Settings struct.
// Boolean switches that are absent keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		SMTPTLS:              constants.DefaultSMTPTLS,
	}

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingSprintStart:
			settings.SprintStart = value
		case constants.SettingSprintLengthDays:
			settings.SprintLengthDays, err = parseIntSetting(key, value)
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingMorningTime:
			settings.MorningTime = value
		case constants.SettingMiddayTime:
			settings.MiddayTime = value
		case constants.SettingEveningTime:
			settings.EveningTime = value
		case constants.SettingBedtimeTime:
			settings.BedtimeTime = value
		case constants.SettingAccountabilityTime:
			settings.AccountabilityTime = value
		case constants.SettingNotificationGracePeriodMin:
			settings.NotificationGracePeriodMin, err = parseIntSetting(key, value)
		case constants.SettingChannels:
			settings.Channels = ParseChannelList(value)
		case constants.SettingEmailTo:
			settings.EmailTo = value
		case constants.SettingEmailFrom:
			settings.EmailFrom = value
		case constants.SettingSMTPHost:
			settings.SMTPHost = value
		case constants.SettingSMTPPort:
			settings.SMTPPort, err = parseIntSetting(key, value)
		case constants.SettingSMTPUsername:
			settings.SMTPUsername = value
		case constants.SettingSMTPTLS:
			settings.SMTPTLS = value == "true"
		case constants.SettingWebhookURL:
			settings.WebhookURL = value
		case constants.SettingTelegramChatID:
			settings.TelegramChatID = value
		case constants.SettingDiscordWebhookURL:
			settings.DiscordWebhookURL = value
		case constants.SettingRedisAddr:
			settings.RedisAddr = value
		}
		if err != nil {
			return Settings{}, err
		}
	}
	return settings, nil
}

func parseIntSetting(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                   settings.Timezone,
		constants.SettingSprintStart:                settings.SprintStart,
		constants.SettingSprintLengthDays:           strconv.Itoa(settings.SprintLengthDays),
		constants.SettingNotificationsEnabled:       strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingMorningTime:                settings.MorningTime,
		constants.SettingMiddayTime:                 settings.MiddayTime,
		constants.SettingEveningTime:                settings.EveningTime,
		constants.SettingBedtimeTime:                settings.BedtimeTime,
		constants.SettingAccountabilityTime:         settings.AccountabilityTime,
		constants.SettingNotificationGracePeriodMin: strconv.Itoa(settings.NotificationGracePeriodMin),
		constants.SettingChannels:                   strings.Join(settings.Channels, ","),
		constants.SettingEmailTo:                    settings.EmailTo,
		constants.SettingEmailFrom:                  settings.EmailFrom,
		constants.SettingSMTPHost:                   settings.SMTPHost,
		constants.SettingSMTPPort:                   strconv.Itoa(settings.SMTPPort),
		constants.SettingSMTPUsername:               settings.SMTPUsername,
		constants.SettingSMTPTLS:                    strconv.FormatBool(settings.SMTPTLS),
		constants.SettingWebhookURL:                 settings.WebhookURL,
		constants.SettingTelegramChatID:             settings.TelegramChatID,
		constants.SettingDiscordWebhookURL:          settings.DiscordWebhookURL,
		constants.SettingRedisAddr:                  settings.RedisAddr,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.SprintLengthDays == 0 {
		settings.SprintLengthDays = constants.DefaultSprintLengthDays
	}
	if settings.MorningTime == "" {
		settings.MorningTime = constants.DefaultMorningTime
	}
	if settings.MiddayTime == "" {
		settings.MiddayTime = constants.DefaultMiddayTime
	}
	if settings.EveningTime == "" {
		settings.EveningTime = constants.DefaultEveningTime
	}
	if settings.BedtimeTime == "" {
		settings.BedtimeTime = constants.DefaultBedtimeTime
	}
	if settings.AccountabilityTime == "" {
		settings.AccountabilityTime = constants.DefaultAccountabilityTime
	}
	if settings.NotificationGracePeriodMin == 0 {
		settings.NotificationGracePeriodMin = constants.DefaultNotificationGracePeriodMin
	}
	if settings.Channels == nil {
		settings.Channels = ParseChannelList(constants.DefaultChannels)
	}
	if settings.SMTPPort == 0 {
		settings.SMTPPort = constants.DefaultSMTPPort
	}
}

// DefaultSettings returns a Settings value with every default applied
func DefaultSettings() Settings {
	s := Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		SMTPTLS:              constants.DefaultSMTPTLS,
	}
	ApplyDefaultSettings(&s)
	return s
}

// ParseChannelList splits a comma separated channel list, dropping blanks and duplicates.
// An explicitly empty list yields an empty, non-nil slice.
func ParseChannelList(value string) []string {
	channels := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		channels = append(channels, name)
	}
	return channels
}
