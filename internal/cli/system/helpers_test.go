package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

// fixedNow is 2025-03-10 21:35 UTC, five minutes after the default accountability time
var fixedNow = time.Date(2025, 3, 10, 21, 35, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Stdout = &out
	ctx.NowFunc = func() time.Time { return fixedNow }
	return ctx, store, &out
}

func updateSettings(t *testing.T, store *sqlite.Store, fn func(*models.Settings)) {
	t.Helper()
	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	fn(&settings)
	if err := store.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
}

func addEntry(t *testing.T, store *sqlite.Store, date string, done int) {
	t.Helper()
	entry := models.DailyEntry{ID: "entry-" + date, Date: date, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	for i := 0; i < done && i < models.SessionCount; i++ {
		entry.Sessions[i] = true
	}
	if err := store.UpsertEntry(context.Background(), entry); err != nil {
		t.Fatalf("failed to add entry %s: %v", date, err)
	}
}
