package gateways

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

func TestLocator_DiscoverProductPaths_MatchesVariantSubstring(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("application data roots come from environment variables on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, dir := range []string{
		filepath.Join(home, ".config", "augmentcode-kv"),
		filepath.Join(home, ".config", "unrelated"),
		filepath.Join(home, "Library", "Application Support", "AugmentCode-data"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLocator(testProfile(), &interfaces.NoOpLogger{})
	found := l.DiscoverProductPaths()

	if len(found) != 1 {
		t.Fatalf("DiscoverProductPaths = %v, want exactly the suffixed product directory", found)
	}
	name := filepath.Base(found[0].Path)
	if name != "augmentcode-kv" && name != "AugmentCode-data" {
		t.Errorf("discovered %q, want a directory containing a name variant", found[0].Path)
	}
}

func TestLocator_CollectFilesByKind(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "globalStorage")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	files := []string{
		filepath.Join(root, "storage.json"),
		filepath.Join(root, "settings.ini"),
		filepath.Join(sub, "output.log"),
		filepath.Join(sub, "state.db"),
		filepath.Join(sub, "history.sqlite3"),
		filepath.Join(root, "binary.exe"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLocator(testProfile(), &interfaces.NoOpLogger{})
	paths := []entities.ArtifactPath{{Path: root, Kind: entities.ArtifactDirectory}}

	configs := l.CollectConfigFiles(paths)
	if len(configs) != 3 {
		t.Errorf("config files = %v, want json, ini and log", configs)
	}

	dbs := l.CollectDatabaseFiles(paths)
	if len(dbs) != 2 {
		t.Errorf("database files = %v, want db and sqlite3", dbs)
	}
	for _, db := range dbs {
		ext := filepath.Ext(db)
		if ext != ".db" && ext != ".sqlite3" {
			t.Errorf("unexpected database file %q", db)
		}
	}
}

func TestLocator_IgnoresUnknownExtensions(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "program.bin"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLocator(testProfile(), &interfaces.NoOpLogger{})
	paths := []entities.ArtifactPath{{Path: root, Kind: entities.ArtifactDirectory}}

	if got := l.CollectConfigFiles(paths); len(got) != 0 {
		t.Errorf("config files = %v, want none", got)
	}
	if got := l.CollectDatabaseFiles(paths); len(got) != 0 {
		t.Errorf("database files = %v, want none", got)
	}
}
