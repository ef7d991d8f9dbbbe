package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/growthdash/internal/constants"
)

// Logger is the process-wide logger; nil until Init runs
var Logger *log.Logger

var (
	rotator *lumberjack.Logger
	discard = log.New(io.Discard)
)

// Rotation limits for the log file
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default level (info, or debug with Debug set). Empty keeps the default.
	Level string
}

// LogFilePath returns where Init writes the rotating log for a config directory
func LogFilePath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init opens the rotating log file under cfg.ConfigDir. With Debug set every
// line is mirrored to stderr and caller locations are reported.
func Init(cfg Config) error {
	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}

	path := LogFilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	_ = Close()
	rotator = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	var out io.Writer = rotator
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, rotator)
	}
	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func resolveLevel(cfg Config) (log.Level, error) {
	if cfg.Level != "" {
		return log.ParseLevel(strings.ToLower(cfg.Level))
	}
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	return log.InfoLevel, nil
}

// Close flushes and closes the log file. Later log calls are dropped until Init runs again.
func Close() error {
	Logger = nil
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func current() *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger
}

// With returns a child logger that adds keyvals to every line, e.g. the
// channel and ledger kind of one notification send.
func With(keyvals ...any) *log.Logger {
	return current().With(keyvals...)
}

func Debug(msg string, keyvals ...any) { current().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { current().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { current().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { current().Error(msg, keyvals...) }
