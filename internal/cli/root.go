package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/growthdash/internal/backup"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/storage"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Journal *journal.Service
	Debug   bool

	// Stdin, Stdout and NowFunc are replaced in tests
	Stdin   io.Reader
	Stdout  io.Writer
	NowFunc func() time.Time
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:   store,
		Journal: journal.NewService(store),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		NowFunc: time.Now,
	}
}

// Ctx is the context commands pass to storage and channels
func (c *Context) Ctx() context.Context {
	return context.Background()
}

func (c *Context) Now() time.Time {
	if c.NowFunc == nil {
		return time.Now()
	}
	return c.NowFunc()
}

func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) In() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

// Confirm prints prompt and reads a y/N answer from stdin
func (c *Context) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out(), "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// IsSQLite reports whether the store is a local SQLite file (backups only apply there)
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseRating parses a 1-10 rating flag value; empty means not given
func ParseRating(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FormatRating renders an optional rating for display
func FormatRating(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// FormatAverage renders an optional average rating for display
func FormatAverage(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
