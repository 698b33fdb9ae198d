package entities

// CleanupOptions enumerates which mutation categories a cleanup run
// executes and their parameters. Passed by value into the orchestrator and
// never mutated after construction.
type CleanupOptions struct {
	BackupEnabled bool

	// Telemetry category.
	ModifyTelemetryIDs bool
	ModifyConfigFiles  bool
	ModifyRegistry     bool

	// Database category.
	CleanDatabases       bool
	RemoveKeywordRecords bool
	RemoveAccountData    bool
	ClearSessionData     bool

	// Workspace category.
	CleanWorkspaces    bool
	BackupWorkspaces   bool
	WorkspaceItemTypes []CleanableItemType
	ClearAllCache      bool
	RemoveLockFiles    bool

	// Account category. TargetEmail selects targeted redaction of one
	// address; RemoveAllAccounts is the explicit opt-in for exhaustive
	// removal of every discovered email and username.
	CleanAccountData  bool
	TargetEmail       string
	RemoveAllAccounts bool
}

// DefaultCleanupOptions mirrors the defaults the shell offers: every
// category enabled, backups on, targeted account cleaning off.
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		BackupEnabled:        true,
		ModifyTelemetryIDs:   true,
		ModifyConfigFiles:    true,
		ModifyRegistry:       true,
		CleanDatabases:       true,
		RemoveKeywordRecords: true,
		ClearSessionData:     true,
		CleanWorkspaces:      true,
		BackupWorkspaces:     true,
		WorkspaceItemTypes:   []CleanableItemType{ItemCacheFolder, ItemTempFile, ItemSessionFile},
		RemoveLockFiles:      true,
		CleanAccountData:     true,
	}
}

// Destructive reports whether the options request irreversible wholesale
// account removal (no target email, exhaustive mode). The calling shell
// must gate this with an explicit confirmation.
func (o CleanupOptions) Destructive() bool {
	return (o.CleanAccountData || o.RemoveAccountData) && o.TargetEmail == "" && o.RemoveAllAccounts
}
