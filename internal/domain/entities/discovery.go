package entities

// AccountFile pairs a scanned file with the account data extracted from it.
type AccountFile struct {
	Path      string
	Emails    []string
	Usernames []string
}

// AccountDiscovery aggregates account data found across all product paths.
// Emails and Usernames are de-duplicated across files.
type AccountDiscovery struct {
	Emails    []string
	Usernames []string
	Files     []AccountFile
}

// TotalReferences counts distinct emails plus distinct usernames.
func (a AccountDiscovery) TotalReferences() int {
	return len(a.Emails) + len(a.Usernames)
}

// DiscoveryResult is the aggregated outcome of one discovery run. It is
// owned exclusively by the orchestrator and feeds both cleanup sequencing
// and report generation.
type DiscoveryResult struct {
	ProductPaths    []ArtifactPath
	TelemetryFields []IdentityRecord
	RegistryFields  []IdentityRecord
	DatabaseFiles   []string
	Workspaces      []WorkspaceDescriptor
	AccountData     AccountDiscovery
	EditorScan      EditorScanResult
	TotalLocations  int
}
