package gateways

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

var cacheFolderNames = map[string]bool{
	"cache": true, "caches": true, ".cache": true,
	"tmp": true, "temp": true, "logs": true,
}

var projectMarkers = []string{
	".git", "package.json", "go.mod", "Cargo.toml",
	"pyproject.toml", "requirements.txt", "pom.xml",
}

var tempFileSuffixes = []string{".tmp", ".temp", ".bak", "~"}
var sessionFileHints = []string{"session", "state", "history"}
var pathLikeKeys = []string{"workspace", "project", "directory", "path", "folder"}

// WorkspaceGateway locates and analyzes directories that hold the
// product's per-project storage, and deletes the cleanable parts of them
// during cleanup.
type WorkspaceGateway struct {
	profile entities.Profile
	log     interfaces.Logger
}

func NewWorkspaceGateway(profile entities.Profile, log interfaces.Logger) *WorkspaceGateway {
	return &WorkspaceGateway{profile: profile, log: log}
}

// DiscoverWorkspaces combines three sources: profile workspace patterns
// applied under the product paths, well-known per-OS user locations, and
// path-looking values inside JSON config files. Duplicates collapse by
// path.
func (g *WorkspaceGateway) DiscoverWorkspaces(productPaths []entities.ArtifactPath, configFiles []string) []entities.WorkspaceDescriptor {
	seen := map[string]bool{}
	var candidates []string

	for _, ap := range productPaths {
		for _, pattern := range g.profile.WorkspacePatterns {
			matches, err := filepath.Glob(filepath.Join(ap.Path, pattern))
			if err != nil {
				continue
			}
			candidates = append(candidates, matches...)
		}
	}
	candidates = append(candidates, g.wellKnownPaths()...)
	candidates = append(candidates, g.pathsFromConfigs(configFiles)...)

	var workspaces []entities.WorkspaceDescriptor
	for _, path := range candidates {
		abs, err := filepath.Abs(path)
		if err != nil || seen[abs] {
			continue
		}
		fi, err := os.Stat(abs)
		if err != nil || !fi.IsDir() {
			continue
		}
		seen[abs] = true
		workspaces = append(workspaces, g.analyzeDirectory(abs))
	}
	return workspaces
}

func (g *WorkspaceGateway) wellKnownPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	name := g.profile.ProductName
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = append(paths,
			filepath.Join(home, "Documents", name),
			filepath.Join(home, name),
		)
	case "darwin":
		paths = append(paths,
			filepath.Join(home, "Library", "Application Support", name, "workspaces"),
			filepath.Join(home, name),
		)
	default:
		paths = append(paths,
			filepath.Join(home, ".local", "share", strings.ToLower(name), "workspaces"),
			filepath.Join(home, name),
		)
	}
	return paths
}

// pathsFromConfigs pulls values that look like directories out of JSON
// configs when they sit under a workspace-ish key.
func (g *WorkspaceGateway) pathsFromConfigs(configFiles []string) []string {
	var paths []string
	for _, file := range configFiles {
		if strings.ToLower(filepath.Ext(file)) != ".json" {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		collectPathValues(doc, "", &paths)
	}
	return paths
}

func collectPathValues(node any, key string, out *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			collectPathValues(child, k, out)
		}
	case []any:
		for _, child := range v {
			collectPathValues(child, key, out)
		}
	case string:
		if !looksLikePath(v) {
			return
		}
		lower := strings.ToLower(key)
		for _, hint := range pathLikeKeys {
			if strings.Contains(lower, hint) {
				*out = append(*out, v)
				return
			}
		}
	}
}

func looksLikePath(v string) bool {
	if len(v) < 3 {
		return false
	}
	return strings.ContainsAny(v, `/\`) || (len(v) > 2 && v[1] == ':')
}

func (g *WorkspaceGateway) analyzeDirectory(path string) entities.WorkspaceDescriptor {
	ws := entities.WorkspaceDescriptor{
		Path: path,
		Name: filepath.Base(path),
	}

	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == path {
			return nil
		}
		if d.IsDir() {
			name := strings.ToLower(d.Name())
			if cacheFolderNames[name] {
				ws.CacheFolders = append(ws.CacheFolders, p)
				return nil
			}
			if isProjectDir(p) {
				ws.ProjectFolders = append(ws.ProjectFolders, p)
			}
			return nil
		}
		ws.FileCount++
		if fi, err := d.Info(); err == nil {
			ws.TotalSize += fi.Size()
		}
		lower := strings.ToLower(d.Name())
		if hasSuffixAny(lower, tempFileSuffixes) {
			ws.TempFiles = append(ws.TempFiles, p)
		} else if containsAny(lower, sessionFileHints) {
			ws.SessionFiles = append(ws.SessionFiles, p)
		}
		return nil
	})

	for _, dir := range ws.CacheFolders {
		ws.CleanableItems = append(ws.CleanableItems, entities.CleanableItem{
			Type:         entities.ItemCacheFolder,
			Path:         dir,
			Description:  "cache folder " + filepath.Base(dir),
			Risk:         entities.RiskLow,
			SizeEstimate: dirSize(dir),
		})
	}
	for _, file := range ws.TempFiles {
		ws.CleanableItems = append(ws.CleanableItems, entities.CleanableItem{
			Type:        entities.ItemTempFile,
			Path:        file,
			Description: "temporary file " + filepath.Base(file),
			Risk:        entities.RiskLow,
		})
	}
	for _, file := range ws.SessionFiles {
		ws.CleanableItems = append(ws.CleanableItems, entities.CleanableItem{
			Type:        entities.ItemSessionFile,
			Path:        file,
			Description: "session file " + filepath.Base(file),
			Risk:        entities.RiskMedium,
		})
	}
	return ws
}

// Clean deletes the selected item types of one workspace. Failures are
// logged and counted against success, never fatal for the rest of the
// items.
func (g *WorkspaceGateway) Clean(ws entities.WorkspaceDescriptor, opts entities.CleanupOptions) (int, bool) {
	wanted := map[entities.CleanableItemType]bool{}
	for _, t := range opts.WorkspaceItemTypes {
		wanted[t] = true
	}

	removed := 0
	success := true
	for _, item := range ws.CleanableItems {
		if !wanted[item.Type] && !(opts.ClearAllCache && item.Type == entities.ItemCacheFolder) {
			continue
		}
		if err := os.RemoveAll(item.Path); err != nil {
			g.log.Warn("could not remove item", interfaces.F("path", item.Path), interfaces.F("error", err.Error()))
			success = false
			continue
		}
		removed++
	}

	if opts.RemoveLockFiles {
		for _, pattern := range []string{"*.lock", "*.lck", ".lock*"} {
			matches, err := filepath.Glob(filepath.Join(ws.Path, pattern))
			if err != nil {
				continue
			}
			for _, lock := range matches {
				if err := os.Remove(lock); err != nil {
					g.log.Warn("could not remove lock file", interfaces.F("path", lock))
					success = false
					continue
				}
				removed++
			}
		}
	}
	return removed, success
}

func isProjectDir(path string) bool {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return true
		}
	}
	return false
}

func dirSize(path string) int64 {
	var total int64
	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total
}

func hasSuffixAny(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
