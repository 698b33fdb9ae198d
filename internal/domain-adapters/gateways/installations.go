package gateways

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

// editorSpec describes where one host editor keeps its configuration and
// extensions on the current OS.
type editorSpec struct {
	key        string
	name       string
	configDirs []string
	extDirs    []string
}

func editorSpecs() []editorSpec {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	type dirs struct{ config, ext string }
	layout := func(vendor string) dirs {
		switch runtime.GOOS {
		case "windows":
			return dirs{
				config: filepath.Join(os.Getenv("APPDATA"), vendor, "User"),
				ext:    filepath.Join(home, "."+strings.ToLower(vendor), "extensions"),
			}
		case "darwin":
			return dirs{
				config: filepath.Join(home, "Library", "Application Support", vendor, "User"),
				ext:    filepath.Join(home, "."+strings.ToLower(vendor), "extensions"),
			}
		default:
			return dirs{
				config: filepath.Join(home, ".config", vendor, "User"),
				ext:    filepath.Join(home, "."+strings.ToLower(vendor), "extensions"),
			}
		}
	}

	var specs []editorSpec
	for _, e := range []struct{ key, name, vendor string }{
		{"vscode", "Visual Studio Code", "Code"},
		{"vscodium", "VSCodium", "VSCodium"},
		{"cursor", "Cursor", "Cursor"},
		{"windsurf", "Windsurf", "Windsurf"},
	} {
		d := layout(e.vendor)
		extDir := d.ext
		if e.key == "vscode" {
			extDir = filepath.Join(home, ".vscode", "extensions")
		}
		specs = append(specs, editorSpec{
			key:        e.key,
			name:       e.name,
			configDirs: []string{d.config},
			extDirs:    []string{extDir},
		})
	}
	return specs
}

// InstallationScanner looks inside host editors for the product's
// extension directories, configuration, workspace storage and caches.
type InstallationScanner struct {
	profile entities.Profile
	log     interfaces.Logger
}

func NewInstallationScanner(profile entities.Profile, log interfaces.Logger) *InstallationScanner {
	return &InstallationScanner{profile: profile, log: log}
}

// Scan builds the full editor scan result, including the derived
// recommendations and warnings the reports surface.
func (s *InstallationScanner) Scan(running []entities.ProcessInfo) entities.EditorScanResult {
	result := entities.EditorScanResult{
		RunningProcesses: running,
		Installations:    map[string][]entities.Installation{},
	}

	for _, spec := range editorSpecs() {
		inst, ok := s.scanEditor(spec)
		if !ok {
			continue
		}
		result.Installations[spec.key] = append(result.Installations[spec.key], inst)
		result.TotalInstances++
	}

	s.deriveGuidance(&result)
	return result
}

func (s *InstallationScanner) scanEditor(spec editorSpec) (entities.Installation, bool) {
	inst := entities.Installation{EditorKey: spec.key, Editor: spec.name}

	for _, extRoot := range spec.extDirs {
		entries, err := os.ReadDir(extRoot)
		if err != nil {
			continue
		}
		inst.Path = extRoot
		for _, entry := range entries {
			if !entry.IsDir() || !strings.Contains(strings.ToLower(entry.Name()), s.profile.Keyword) {
				continue
			}
			dir := filepath.Join(extRoot, entry.Name())
			inst.Data.ExtensionDirs = append(inst.Data.ExtensionDirs, entities.FoundFile{
				Path: dir,
				Size: dirSize(dir),
			})
		}
	}

	for _, configRoot := range spec.configDirs {
		s.collectProductFiles(configRoot, &inst.Data)
	}

	found := len(inst.Data.ExtensionDirs) > 0 || inst.FileCount() > 0
	return inst, found
}

// collectProductFiles walks an editor config root and files every
// product-named entry into the right category by where it lives.
func (s *InstallationScanner) collectProductFiles(root string, data *entities.InstallationData) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.Contains(strings.ToLower(path), s.profile.Keyword) {
			return nil
		}
		var size int64
		if fi, err := d.Info(); err == nil {
			size = fi.Size()
		}
		file := entities.FoundFile{Path: path, Size: size}

		lower := strings.ToLower(path)
		switch {
		case strings.Contains(lower, "workspacestorage"):
			data.WorkspaceFiles = append(data.WorkspaceFiles, file)
		case strings.Contains(lower, "cache"):
			data.CacheFiles = append(data.CacheFiles, file)
		default:
			data.ConfigFiles = append(data.ConfigFiles, file)
		}
		return nil
	})
}

func (s *InstallationScanner) deriveGuidance(result *entities.EditorScanResult) {
	if len(result.RunningProcesses) > 0 {
		names := map[string]bool{}
		for _, p := range result.RunningProcesses {
			names[p.Editor] = true
		}
		editors := make([]string, 0, len(names))
		for name := range names {
			editors = append(editors, name)
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("editors currently running: %s; close them before cleaning", strings.Join(editors, ", ")))
	}

	if result.TotalInstances > 1 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("product found in %d editors; clean all of them to fully remove identity data", result.TotalInstances))
	}

	totalFiles := 0
	for _, installs := range result.Installations {
		for _, inst := range installs {
			totalFiles += inst.FileCount()
		}
	}
	if totalFiles > 50 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d product files found across editors; cleanup may take a while", totalFiles))
	}
	if result.TotalInstances > 0 && len(result.RunningProcesses) == 0 {
		result.Recommendations = append(result.Recommendations,
			"no editors are running; safe to clean now")
	}
}
