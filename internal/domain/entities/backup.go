package entities

// BackupItemType tags a manifest entry with the kind of artifact it holds.
type BackupItemType string

const (
	BackupItemFile      BackupItemType = "file"
	BackupItemDirectory BackupItemType = "directory"
	BackupItemRegistry  BackupItemType = "registry"
)

// BackupItem records one backed-up artifact inside a run manifest.
type BackupItem struct {
	Type        BackupItemType `json:"type"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Size        int64          `json:"size"`
	KeyPath     string         `json:"key_path,omitempty"`
	BackupFile  string         `json:"backup_file,omitempty"`
}

// BackupManifest is the JSON side-car written per backup run. It is
// append-only while the run is active and the single source of truth for
// restore.
type BackupManifest struct {
	Timestamp  string       `json:"timestamp"`
	BackupType string       `json:"backup_type"`
	Items      []BackupItem `json:"items"`
}

// BackupInfo summarizes one backup run directory for listing.
type BackupInfo struct {
	Name      string
	Path      string
	Timestamp string
	ItemCount int
	TotalSize int64
}
