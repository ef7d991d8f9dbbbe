package constants

import "time"

// RecordSource marks where a check-in write came from
type RecordSource string

const (
	AppName            = "growthdash"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/growthdash/growthdash.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment fallbacks for credentials that are not in the keyring
	EnvDBConnection  = "GROWTHDASH_DB_CONNECTION"
	EnvSMTPPassword  = "GROWTHDASH_SMTP_PASSWORD"
	EnvTelegramToken = "GROWTHDASH_TELEGRAM_TOKEN"

	// EnvLogLevel overrides the log level (debug, info, warn, error)
	EnvLogLevel = "GROWTHDASH_LOG_LEVEL"

	// Keyring entries for channel secrets
	KeyringSMTPPassword  = "smtp-password"
	KeyringTelegramToken = "telegram-bot-token"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "growthdash-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "growthdash-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.growthdash"
	ChannelRequestTimeout  = 10 * time.Second
	LedgerTTL              = 48 * time.Hour

	// Check-in sources
	SourceCLI         RecordSource = "cli"
	SourceInteractive RecordSource = "interactive"
	SourceTUI         RecordSource = "tui"

	// Sprint defaults
	DefaultSprintLengthDays = 90
)
