// # internal/core/app/app_test.go
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"undoc/internal/core/config"
)

func TestHandleChanges_RechecksAndRemoves(t *testing.T) {
	tmpDir := t.TempDir()
	kept := writeSource(t, tmpDir, "kept.rb")
	removed := writeSource(t, tmpDir, "removed.rb")
	ignored := writeSource(t, tmpDir, "notes.txt")

	app := newScanApp(t, tmpDir, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("Thing")},
	})
	ctx := context.Background()
	if _, err := app.CheckFile(ctx, kept); err != nil {
		t.Fatal(err)
	}
	if _, err := app.CheckFile(ctx, removed); err != nil {
		t.Fatal(err)
	}

	got := make(chan Update, 1)
	app.SetUpdateHandler(func(update Update) {
		select {
		case got <- update:
		default:
		}
	})

	if err := os.Remove(removed); err != nil {
		t.Fatal(err)
	}
	app.HandleChanges([]string{kept, removed, ignored})

	select {
	case update := <-got:
		if update.FileCount != 1 {
			t.Fatalf("expected file_count=1 after removal, got %d", update.FileCount)
		}
		if len(update.Offenses) != 1 || update.Offenses[0].File != kept {
			t.Fatalf("expected one offense for %q, got %+v", kept, update.Offenses)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch update")
	}
}

func TestCurrentUpdate(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := writeSource(t, tmpDir, "invoice.rb")

	app := newScanApp(t, tmpDir, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("Invoice")},
	})
	if _, err := app.CheckFile(context.Background(), filePath); err != nil {
		t.Fatal(err)
	}

	update := app.CurrentUpdate()
	if update.FileCount != 1 || update.DefinitionCount != 1 {
		t.Fatalf("unexpected update: %+v", update)
	}
	if len(update.Offenses) != 1 {
		t.Fatalf("expected 1 offense, got %d", len(update.Offenses))
	}
}

func TestOpenHistoryStore_MovesCorruptDatabaseAside(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "undoc.db")
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite database"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := openHistoryStore(dbPath)
	if err != nil {
		t.Fatalf("open history store: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath + ".corrupt"); err != nil {
		t.Fatalf("expected corrupt database moved aside: %v", err)
	}
	if store.Path() != dbPath {
		t.Fatalf("expected fresh store at %q, got %q", dbPath, store.Path())
	}
}

func TestClose_ReleasesHistoryStore(t *testing.T) {
	store := &historyStoreStub{}
	app, err := NewWithDependencies(&config.Config{}, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("X")},
		History:    store,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := app.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if app.History != nil {
		t.Fatal("expected history store released")
	}
}

func TestCheckFile_HonorsRateLimit(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := writeSource(t, tmpDir, "invoice.rb")

	cfg := &config.Config{
		ScanPaths: []string{tmpDir},
		Limits:    config.Limits{FilesPerSecond: 0.1},
	}
	app, err := NewWithDependencies(cfg, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("Invoice")},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := app.CheckFile(ctx, filePath); err != nil {
		t.Fatal(err)
	}

	// The burst is spent; the next token is ten seconds out.
	deadlineCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := app.CheckFile(deadlineCtx, filePath); err == nil {
		t.Fatal("expected rate limit deadline error")
	}
}

func TestStubParserSetsPath(t *testing.T) {
	stub := stubCodeParser{parsedFile: undocumentedClassFile("Invoice")}
	file, err := stub.ParseFile("lib/invoice.rb", nil)
	if err != nil {
		t.Fatal(err)
	}
	if file.Path != "lib/invoice.rb" {
		t.Fatalf("expected path propagated, got %q", file.Path)
	}
}
