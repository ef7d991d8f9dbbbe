package backups

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/growthdash/internal/backup"
	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

func setup(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "growthdash.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Stdout = &out
	return ctx, store, &out
}

func addEntry(t *testing.T, store *sqlite.Store, date string) {
	t.Helper()
	now := time.Now()
	entry := models.DailyEntry{ID: "e-" + date, Date: date, CreatedAt: now, UpdatedAt: now}
	entry.Sessions[models.SessionMorning] = true
	if err := store.UpsertEntry(context.Background(), entry); err != nil {
		t.Fatal(err)
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, out := setup(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: growthdash-") {
		t.Errorf("unexpected create output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("unexpected list output: %q", out.String())
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, _, out := setup(t)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store, out := setup(t)
	addEntry(t, store, "2025-03-01")

	mgr := backup.NewManager(store.GetConfigPath())
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	addEntry(t, store, "2025-03-02")

	ctx.Stdin = strings.NewReader("y\n")
	if err := (&BackupRestoreCmd{BackupFile: info.Name()}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") {
		t.Errorf("unexpected output: %q", out.String())
	}

	restored := sqlite.NewStore(store.GetConfigPath())
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	entries, err := restored.GetEntries(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Date != "2025-03-01" {
		t.Errorf("expected only the backed up entry, got %+v", entries)
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, store, out := setup(t)
	info, err := backup.NewManager(store.GetConfigPath()).Create()
	if err != nil {
		t.Fatal(err)
	}

	ctx.Stdin = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: info.Path}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setup(t)
	if err := (&BackupRestoreCmd{BackupFile: "growthdash-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupRestoreRejectsForeignFile(t *testing.T) {
	ctx, _, _ := setup(t)
	bogus := filepath.Join(t.TempDir(), "notes.db")
	if err := os.WriteFile(bogus, []byte("not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupRestoreCmd{BackupFile: bogus, Yes: true}).Run(ctx); err == nil {
		t.Error("expected restore of a non-database file to fail")
	}
}
