package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/growthdash/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownSecret is returned for a secret name outside KnownSecrets
	ErrUnknownSecret = errors.New("unknown secret")
)

// Secret names a credential stored under the app's keyring service
type Secret struct {
	User   string // keyring account name
	EnvVar string // environment fallback
	Label  string
}

var (
	SecretDBConnection  = Secret{User: constants.DefaultKeyringUser, EnvVar: constants.EnvDBConnection, Label: "database connection string"}
	SecretSMTPPassword  = Secret{User: constants.KeyringSMTPPassword, EnvVar: constants.EnvSMTPPassword, Label: "SMTP password"}
	SecretTelegramToken = Secret{User: constants.KeyringTelegramToken, EnvVar: constants.EnvTelegramToken, Label: "Telegram bot token"}

	// KnownSecrets are the channel secrets managed by `keyring secret`
	KnownSecrets = []Secret{SecretSMTPPassword, SecretTelegramToken}
)

// LookupSecret resolves a secret by its keyring account name
func LookupSecret(name string) (Secret, error) {
	for _, s := range KnownSecrets {
		if s.User == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Secret{}, fmt.Errorf("%w %q (known: %s, %s)", ErrUnknownSecret, name, SecretSMTPPassword.User, SecretTelegramToken.User)
}

// Get retrieves a secret from the OS keyring. Returns ErrNotFound if it is not stored.
func Get(s Secret) (string, error) {
	value, err := keyring.Get(constants.AppName, s.User)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func Set(s Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", s.Label)
	}
	if err := keyring.Set(constants.AppName, s.User, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", s.Label, err)
	}
	return nil
}

func Delete(s Secret) error {
	err := keyring.Delete(constants.AppName, s.User)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", s.Label, err)
	}
	return nil
}

// Resolve prefers the environment variable and falls back to the keyring.
// A missing secret resolves to "" without error; a broken keyring is still reported.
func Resolve(s Secret) (string, error) {
	if v := os.Getenv(s.EnvVar); v != "" {
		return v, nil
	}
	v, err := Get(s)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return Get(SecretDBConnection)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return Set(SecretDBConnection, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return Delete(SecretDBConnection)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
