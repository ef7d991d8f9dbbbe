package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/growthdash/internal/backup"
	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/keyring"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/storage/postgres"
)

var (
	stderr   io.Writer = os.Stderr
	exitFunc           = os.Exit
)

var hints = []struct {
	target error
	hint   string
}{
	{journal.ErrEntryLocked, "past days are read-only; check in for today instead"},
	{journal.ErrFutureDate, "check the timezone with 'growthdash settings --list'"},
	{progress.ErrInvalidDate, "run 'growthdash doctor' to find the malformed entry"},
	{progress.ErrDuplicateDate, "run 'growthdash doctor' to find the duplicated entry"},
	{postgres.ErrEmbeddedCredentials, "store PostgreSQL credentials with 'growthdash keyring set', the " + constants.EnvDBConnection + " variable, or a .pgpass file"},
	{keyring.ErrNotFound, "store the connection string with 'growthdash keyring set'"},
	{keyring.ErrKeyringUnavailable, "set " + constants.EnvDBConnection + " instead of using the keyring"},
	{backup.ErrNotGrowthdashDB, "pick a file from 'growthdash backup list'"},
}

// Hint returns a follow-up suggestion for errors the user can act on, or "".
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err for the terminal, with its hint on a second line
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  Hint: " + hint
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exitFunc(1)
}
