package entities

// CleanableItemType identifies what kind of cleanable workspace item this is.
type CleanableItemType string

const (
	ItemCacheFolder CleanableItemType = "cache_folder"
	ItemTempFile    CleanableItemType = "temp_file"
	ItemSessionFile CleanableItemType = "session_file"
)

// RiskLevel is a coarse indicator of how risky deleting an item is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
)

// CleanableItem is one deletable entry inside a workspace.
type CleanableItem struct {
	Type         CleanableItemType
	Path         string
	Description  string
	Risk         RiskLevel
	SizeEstimate int64
}

// WorkspaceDescriptor is an analyzed directory tree believed to hold user
// project or session storage for the product. Built by discovery; its
// cleanable items may be deleted during cleanup.
type WorkspaceDescriptor struct {
	Path           string
	Name           string
	TotalSize      int64
	FileCount      int
	CacheFolders   []string
	TempFiles      []string
	SessionFiles   []string
	ProjectFolders []string
	CleanableItems []CleanableItem
}
