// Package gateways bridges the orchestrators to the host system: path
// location, workspace analysis, editor installation scanning, and
// process control.
package gateways

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

var configExtensions = map[string]bool{
	".json": true, ".ini": true, ".cfg": true, ".conf": true,
	".xml": true, ".txt": true, ".log": true, ".config": true,
}

var databaseExtensions = map[string]bool{
	".db": true, ".sqlite": true, ".sqlite3": true,
}

// Locator finds the product's data directories under the OS application
// data roots by matching immediate child names against the profile's
// name variants.
type Locator struct {
	profile entities.Profile
	log     interfaces.Logger
}

func NewLocator(profile entities.Profile, log interfaces.Logger) *Locator {
	return &Locator{profile: profile, log: log}
}

// appDataRoots lists the per-OS directories where applications keep
// their data. Missing environment variables simply drop that root.
func appDataRoots() []string {
	var roots []string
	switch runtime.GOOS {
	case "windows":
		for _, env := range []string{"APPDATA", "LOCALAPPDATA", "PROGRAMDATA", "PROGRAMFILES"} {
			if v := os.Getenv(env); v != "" {
				roots = append(roots, v)
			}
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			roots = append(roots,
				filepath.Join(home, "Library", "Application Support"),
				filepath.Join(home, "Library", "Preferences"),
				filepath.Join(home, "Library", "Caches"),
			)
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			roots = append(roots,
				filepath.Join(home, ".config"),
				filepath.Join(home, ".local", "share"),
				filepath.Join(home, ".cache"),
			)
		}
		roots = append(roots, "/etc", "/usr/share", "/opt")
	}
	return roots
}

// DiscoverProductPaths scans each application data root one level deep
// for directories named after the product.
func (l *Locator) DiscoverProductPaths() []entities.ArtifactPath {
	var found []entities.ArtifactPath
	seen := map[string]bool{}
	for _, root := range appDataRoots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			l.log.Debug("root not readable", interfaces.F("root", root))
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || !l.matchesVariant(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if seen[path] {
				continue
			}
			seen[path] = true
			found = append(found, entities.ArtifactPath{
				Path:         path,
				Kind:         entities.ArtifactDirectory,
				DiscoveredBy: "app-data-scan",
			})
		}
	}
	return found
}

func (l *Locator) matchesVariant(name string) bool {
	lower := strings.ToLower(name)
	for _, variant := range l.profile.NameVariants {
		if strings.Contains(lower, strings.ToLower(variant)) {
			return true
		}
	}
	return false
}

// CollectConfigFiles walks the product directories and returns every
// file whose extension marks it as scannable configuration or log text.
func (l *Locator) CollectConfigFiles(paths []entities.ArtifactPath) []string {
	return l.collectByExtension(paths, configExtensions)
}

// CollectDatabaseFiles walks the product directories for embedded
// database files.
func (l *Locator) CollectDatabaseFiles(paths []entities.ArtifactPath) []string {
	return l.collectByExtension(paths, databaseExtensions)
}

func (l *Locator) collectByExtension(paths []entities.ArtifactPath, exts map[string]bool) []string {
	var files []string
	for _, ap := range paths {
		err := filepath.WalkDir(ap.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Permission problems on a subtree are expected; keep walking.
				l.log.Debug("walk error", interfaces.F("path", path))
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if exts[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			l.log.Warn("walk aborted", interfaces.F("path", ap.Path), interfaces.F("error", err.Error()))
		}
	}
	return files
}
