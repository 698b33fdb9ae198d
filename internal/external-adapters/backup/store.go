package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

const manifestName = "backup_manifest.json"

// Store owns the on-disk backup tree: one timestamped run directory per
// cleanup, each with an append-only JSON manifest used for restore.
type Store struct {
	root string
	log  interfaces.Logger
}

func NewStore(root string, log interfaces.Logger) *Store {
	if root == "" {
		root = DefaultRoot()
	}
	return &Store{root: root, log: log}
}

// DefaultRoot places backups under the user's Documents folder on
// Windows and directly under the home directory elsewhere.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "Documents", "AugClean_Backups")
	}
	return filepath.Join(home, "AugClean_Backups")
}

func (s *Store) Root() string { return s.root }

// Run is one active backup run directory.
type Run struct {
	Dir      string
	store    *Store
	manifest entities.BackupManifest
}

// CreateRun makes a new Backup_YYYYMMDD_HHMMSS directory with an empty
// manifest. Every subsequent backup call appends to that manifest before
// the caller mutates the original artifact.
func (s *Store) CreateRun(backupType string) (*Run, error) {
	now := time.Now()
	dir := filepath.Join(s.root, "Backup_"+now.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}
	run := &Run{
		Dir:   dir,
		store: s,
		manifest: entities.BackupManifest{
			Timestamp:  now.Format(time.RFC3339),
			BackupType: backupType,
		},
	}
	if err := run.writeManifest(); err != nil {
		return nil, err
	}
	return run, nil
}

// BackupFile copies one file into the run directory and records it in
// the manifest. The copy keeps a sanitized flat name so colliding base
// names from different directories stay distinct.
func (r *Run) BackupFile(source string) error {
	fi, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}
	dest := filepath.Join(r.Dir, sanitizeName(source))
	if err := copyFile(source, dest); err != nil {
		return fmt.Errorf("backing up %s: %w", source, err)
	}
	r.manifest.Items = append(r.manifest.Items, entities.BackupItem{
		Type:        entities.BackupItemFile,
		Source:      source,
		Destination: dest,
		Size:        fi.Size(),
	})
	return r.writeManifest()
}

// BackupDirectory copies a whole tree into the run directory.
func (r *Run) BackupDirectory(source string) error {
	dest := filepath.Join(r.Dir, sanitizeName(source))
	var total int64
	err := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return copyFile(path, target)
	})
	if err != nil {
		return fmt.Errorf("backing up %s: %w", source, err)
	}
	r.manifest.Items = append(r.manifest.Items, entities.BackupItem{
		Type:        entities.BackupItemDirectory,
		Source:      source,
		Destination: dest,
		Size:        total,
	})
	return r.writeManifest()
}

// BackupRegistryKey writes the key's values as a JSON side-car so they
// can be re-applied on restore.
func (r *Run) BackupRegistryKey(keyPath string, values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	file := filepath.Join(r.Dir, sanitizeName(keyPath)+".json")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("backing up registry key %s: %w", keyPath, err)
	}
	r.manifest.Items = append(r.manifest.Items, entities.BackupItem{
		Type:       entities.BackupItemRegistry,
		Source:     keyPath,
		KeyPath:    keyPath,
		BackupFile: file,
		Size:       int64(len(data)),
	})
	return r.writeManifest()
}

func (r *Run) Manifest() entities.BackupManifest { return r.manifest }

// Location returns the run's directory path.
func (r *Run) Location() string { return r.Dir }

func (r *Run) writeManifest() error {
	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.Dir, manifestName), data, 0o644)
}

// ListRuns returns every backup run under the root, newest first.
func (s *Store) ListRuns() ([]entities.BackupInfo, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []entities.BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "Backup_") {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		manifest, err := s.readManifest(dir)
		if err != nil {
			s.log.Warn("skipping backup with unreadable manifest", interfaces.F("dir", dir))
			continue
		}
		info := entities.BackupInfo{
			Name:      entry.Name(),
			Path:      dir,
			Timestamp: manifest.Timestamp,
			ItemCount: len(manifest.Items),
		}
		for _, item := range manifest.Items {
			info.TotalSize += item.Size
		}
		runs = append(runs, info)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name > runs[j].Name })
	return runs, nil
}

func (s *Store) readManifest(dir string) (entities.BackupManifest, error) {
	var manifest entities.BackupManifest
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return manifest, err
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// Restore copies every file and directory item of a run back to its
// original location. Registry items are skipped here; the caller decides
// whether the platform can re-apply them. The run counts as restored
// when at least one item came back.
func (s *Store) Restore(name string) (int, error) {
	dir := filepath.Join(s.root, name)
	manifest, err := s.readManifest(dir)
	if err != nil {
		return 0, fmt.Errorf("reading manifest for %s: %w", name, err)
	}

	restored := 0
	for _, item := range manifest.Items {
		switch item.Type {
		case entities.BackupItemFile:
			if err := copyFile(item.Destination, item.Source); err != nil {
				s.log.Warn("restore failed", interfaces.F("source", item.Source), interfaces.F("error", err.Error()))
				continue
			}
			restored++
		case entities.BackupItemDirectory:
			if err := copyTree(item.Destination, item.Source); err != nil {
				s.log.Warn("restore failed", interfaces.F("source", item.Source), interfaces.F("error", err.Error()))
				continue
			}
			restored++
		case entities.BackupItemRegistry:
			s.log.Info("registry item not restored automatically", interfaces.F("key", item.KeyPath))
		}
	}
	if restored == 0 && len(manifest.Items) > 0 {
		return 0, fmt.Errorf("no items of backup %s could be restored", name)
	}
	return restored, nil
}

// DeleteRun removes one backup run directory entirely.
func (s *Store) DeleteRun(name string) error {
	if !strings.HasPrefix(name, "Backup_") {
		return fmt.Errorf("%q is not a backup run name", name)
	}
	return os.RemoveAll(filepath.Join(s.root, name))
}

func copyFile(source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyTree(source, dest string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func sanitizeName(path string) string {
	replacer := strings.NewReplacer(
		"/", "_", `\`, "_", ":", "_", " ", "_",
	)
	name := replacer.Replace(path)
	return strings.Trim(name, "_")
}
