package entities

// FoundFile is a product-related file discovered inside a host editor's
// data directories.
type FoundFile struct {
	Path string
	Size int64
}

// InstallationData categorizes the product data found inside one editor
// installation.
type InstallationData struct {
	ExtensionDirs  []FoundFile
	ConfigFiles    []FoundFile
	WorkspaceFiles []FoundFile
	CacheFiles     []FoundFile
}

// Installation is the detected presence of the product inside one host
// editor. Read-only once built.
type Installation struct {
	EditorKey string
	Editor    string
	Path      string
	Data      InstallationData
}

// FileCount returns how many files the installation's categorized data
// spans, extension directories excluded.
func (i Installation) FileCount() int {
	return len(i.Data.ConfigFiles) + len(i.Data.WorkspaceFiles) + len(i.Data.CacheFiles)
}

// EditorScanResult aggregates the host-editor scan: running processes,
// per-editor installations, and derived guidance for the caller.
type EditorScanResult struct {
	RunningProcesses []ProcessInfo
	Installations    map[string][]Installation
	TotalInstances   int
	Recommendations  []string
	Warnings         []string
}
