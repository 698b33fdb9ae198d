package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), &interfaces.NoOpLogger{})
}

func readManifestFile(t *testing.T, dir string) entities.BackupManifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "backup_manifest.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var manifest entities.BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}
	return manifest
}

func TestStore_CreateRun_WritesManifest(t *testing.T) {
	store := newTestStore(t)

	run, err := store.CreateRun("cleanup")
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(run.Dir), "Backup_") {
		t.Errorf("run directory %q missing Backup_ prefix", run.Dir)
	}

	manifest := readManifestFile(t, run.Dir)
	if manifest.BackupType != "cleanup" {
		t.Errorf("BackupType = %q, want cleanup", manifest.BackupType)
	}
	if len(manifest.Items) != 0 {
		t.Errorf("new manifest has %d items, want 0", len(manifest.Items))
	}
}

// The manifest on disk must already list a file by the time BackupFile
// returns, so a crash mid-cleanup can never leave a copied file
// unaccounted for.
func TestRun_BackupFile_ManifestBeforeReturn(t *testing.T) {
	store := newTestStore(t)
	src := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(src, []byte(`{"deviceId": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	run, err := store.CreateRun("cleanup")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.BackupFile(src); err != nil {
		t.Fatalf("BackupFile: %v", err)
	}

	manifest := readManifestFile(t, run.Dir)
	if len(manifest.Items) != 1 {
		t.Fatalf("manifest has %d items, want 1", len(manifest.Items))
	}
	item := manifest.Items[0]
	if item.Type != entities.BackupItemFile {
		t.Errorf("item type = %v, want file", item.Type)
	}
	if item.Source != src {
		t.Errorf("item source = %q, want %q", item.Source, src)
	}

	copied, err := os.ReadFile(item.Destination)
	if err != nil {
		t.Fatalf("reading backup copy: %v", err)
	}
	if string(copied) != `{"deviceId": "x"}` {
		t.Errorf("backup copy content = %q", copied)
	}
}

func TestStore_Restore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "config.json")
	original := `{"machineId": "before"}`
	if err := os.WriteFile(src, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	run, err := store.CreateRun("cleanup")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.BackupFile(src); err != nil {
		t.Fatal(err)
	}

	// Simulate the cleanup mutating the original.
	if err := os.WriteFile(src, []byte(`{"machineId": "after"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	restored, err := store.Restore(filepath.Base(run.Dir))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored != 1 {
		t.Errorf("restored = %d, want 1", restored)
	}

	data, _ := os.ReadFile(src)
	if string(data) != original {
		t.Errorf("restored content = %q, want %q", data, original)
	}
}

func TestRun_BackupDirectory(t *testing.T) {
	store := newTestStore(t)
	srcDir := t.TempDir()
	sub := filepath.Join(srcDir, "cache")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "entry.dat"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	run, err := store.CreateRun("cleanup")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.BackupDirectory(srcDir); err != nil {
		t.Fatalf("BackupDirectory: %v", err)
	}

	manifest := readManifestFile(t, run.Dir)
	if len(manifest.Items) != 1 || manifest.Items[0].Type != entities.BackupItemDirectory {
		t.Fatalf("manifest items = %+v, want one directory item", manifest.Items)
	}
	copied := filepath.Join(manifest.Items[0].Destination, "cache", "entry.dat")
	if _, err := os.Stat(copied); err != nil {
		t.Errorf("nested file missing from backup: %v", err)
	}
}

func TestStore_ListRuns_NewestFirst(t *testing.T) {
	store := newTestStore(t)

	// Fabricate two runs with known names so ordering is deterministic.
	for _, name := range []string{"Backup_20250101_000000", "Backup_20250601_000000"} {
		dir := filepath.Join(store.Root(), name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		manifest := entities.BackupManifest{Timestamp: name, BackupType: "cleanup"}
		data, _ := json.Marshal(manifest)
		if err := os.WriteFile(filepath.Join(dir, "backup_manifest.json"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Name != "Backup_20250601_000000" {
		t.Errorf("first run = %q, want the newest", runs[0].Name)
	}
}

func TestStore_DeleteRun_RejectsForeignNames(t *testing.T) {
	store := newTestStore(t)
	if err := store.DeleteRun("../../etc"); err == nil {
		t.Fatal("DeleteRun accepted a name outside the backup tree")
	}
}
