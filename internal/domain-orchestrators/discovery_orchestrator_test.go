package orchestrators

import (
	"testing"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

type mockLocator struct {
	productPaths []entities.ArtifactPath
	configFiles  []string
	dbFiles      []string
}

func (m *mockLocator) DiscoverProductPaths() []entities.ArtifactPath {
	return m.productPaths
}

func (m *mockLocator) CollectConfigFiles(_ []entities.ArtifactPath) []string {
	return m.configFiles
}

func (m *mockLocator) CollectDatabaseFiles(_ []entities.ArtifactPath) []string {
	return m.dbFiles
}

type mockWorkspaceDiscoverer struct {
	mockWorkspaceManager
	workspaces []entities.WorkspaceDescriptor
}

func (m *mockWorkspaceDiscoverer) DiscoverWorkspaces(_ []entities.ArtifactPath, _ []string) []entities.WorkspaceDescriptor {
	return m.workspaces
}

type mockEditorScanner struct{}

func (m *mockEditorScanner) Scan(running []entities.ProcessInfo) entities.EditorScanResult {
	return entities.EditorScanResult{RunningProcesses: running}
}

type mockProcessManager struct {
	procs   []entities.ProcessInfo
	listErr error
}

func (m *mockProcessManager) ListMatching() ([]entities.ProcessInfo, error) {
	return m.procs, m.listErr
}

func (m *mockProcessManager) Terminate(_ []entities.ProcessInfo, _ bool) entities.TerminationResult {
	return entities.TerminationResult{}
}

func TestDiscoveryOrchestrator_AggregatesAllSources(t *testing.T) {
	locator := &mockLocator{
		productPaths: []entities.ArtifactPath{{Path: "/data/augmentcode", Kind: entities.ArtifactDirectory}},
		configFiles:  []string{"/data/augmentcode/storage.json"},
		dbFiles:      []string{"/data/augmentcode/state.db"},
	}
	configs := &mockConfigScanner{
		discovered: []entities.IdentityRecord{
			{File: "/data/augmentcode/storage.json", Key: "deviceId", Value: "d1"},
		},
		accountData: map[string]entities.AccountFile{
			"/data/augmentcode/storage.json": {
				Path:   "/data/augmentcode/storage.json",
				Emails: []string{"alice@example.com"},
			},
		},
	}
	registry := &mockFieldSource{records: []entities.IdentityRecord{
		{File: `HKEY_CURRENT_USER\Software\AugmentCode`, Key: "MachineGuid", Value: "g1"},
	}}
	workspaces := &mockWorkspaceDiscoverer{
		workspaces: []entities.WorkspaceDescriptor{{Path: "/home/alice/augment-ws"}},
	}

	orch := NewDiscoveryOrchestrator(
		locator, configs, registry, workspaces,
		&mockEditorScanner{}, &mockProcessManager{},
		&Status{}, &interfaces.NoOpLogger{},
	)

	result := orch.Discover()

	if len(result.ProductPaths) != 1 {
		t.Errorf("ProductPaths = %d, want 1", len(result.ProductPaths))
	}
	if len(result.TelemetryFields) != 1 {
		t.Errorf("TelemetryFields = %d, want 1", len(result.TelemetryFields))
	}
	if len(result.RegistryFields) != 1 {
		t.Errorf("RegistryFields = %d, want 1", len(result.RegistryFields))
	}
	if len(result.DatabaseFiles) != 1 {
		t.Errorf("DatabaseFiles = %d, want 1", len(result.DatabaseFiles))
	}
	if len(result.Workspaces) != 1 {
		t.Errorf("Workspaces = %d, want 1", len(result.Workspaces))
	}
	if result.AccountData.TotalReferences() != 1 {
		t.Errorf("account references = %d, want 1", result.AccountData.TotalReferences())
	}

	// 1 path + 1 telemetry + 1 registry + 1 db + 1 workspace + 1 account
	if result.TotalLocations != 6 {
		t.Errorf("TotalLocations = %d, want 6", result.TotalLocations)
	}
}

func TestDiscoveryOrchestrator_DeduplicatesAccounts(t *testing.T) {
	locator := &mockLocator{
		configFiles: []string{"a.json", "b.json"},
	}
	configs := &mockConfigScanner{
		accountData: map[string]entities.AccountFile{
			"a.json": {Path: "a.json", Emails: []string{"alice@example.com"}, Usernames: []string{"alice"}},
			"b.json": {Path: "b.json", Emails: []string{"alice@example.com"}, Usernames: []string{"bob"}},
		},
	}

	orch := NewDiscoveryOrchestrator(
		locator, configs, &mockFieldSource{}, &mockWorkspaceDiscoverer{},
		&mockEditorScanner{}, &mockProcessManager{},
		&Status{}, &interfaces.NoOpLogger{},
	)

	result := orch.Discover()

	if len(result.AccountData.Emails) != 1 {
		t.Errorf("Emails = %v, want de-duplicated single address", result.AccountData.Emails)
	}
	if len(result.AccountData.Usernames) != 2 {
		t.Errorf("Usernames = %v, want alice and bob", result.AccountData.Usernames)
	}
	if len(result.AccountData.Files) != 2 {
		t.Errorf("Files = %d, want both files listed", len(result.AccountData.Files))
	}
}

func TestDiscoveryOrchestrator_StatusCompletes(t *testing.T) {
	status := &Status{}
	orch := NewDiscoveryOrchestrator(
		&mockLocator{}, &mockConfigScanner{}, &mockFieldSource{}, &mockWorkspaceDiscoverer{},
		&mockEditorScanner{}, &mockProcessManager{},
		status, &interfaces.NoOpLogger{},
	)

	orch.Discover()

	snap := status.Snapshot()
	if snap.Running {
		t.Error("status still running after discovery returned")
	}
	if !snap.Success {
		t.Error("status not marked successful")
	}
	if snap.CompletedSteps != snap.TotalSteps {
		t.Errorf("steps = %d/%d, want all completed", snap.CompletedSteps, snap.TotalSteps)
	}
}
