package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/keyring"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/storage"
	"github.com/julianstephens/growthdash/internal/storage/postgres"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

// IsPostgres reports whether config looks like a PostgreSQL URI or key=value DSN
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=") ||
		strings.Contains(config, "dbname=")
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveConfig picks the storage location. An explicit --config wins, then
// GROWTHDASH_DB_CONNECTION, then the keyring, then the default SQLite path.
// trusted is true when the value came from the environment or keyring, where
// an embedded password is acceptable.
func ResolveConfig(flag string) (config string, trusted bool, err error) {
	if flag != "" {
		return flag, false, nil
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, true, nil
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return connStr, true, nil
	case errors.Is(err, keyring.ErrNotFound):
	default:
		logger.Debug("keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath, false, nil
}

// OpenStore builds the provider for config without connecting
func OpenStore(config string, trusted bool) (storage.Provider, error) {
	if IsPostgres(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) || !trusted {
				return nil, err
			}
		}
		return postgres.New(config), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
