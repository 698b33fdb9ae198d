package interfaces

import "augclean/internal/domain/entities"

// PathLocator finds the product's filesystem footprint.
type PathLocator interface {
	DiscoverProductPaths() []entities.ArtifactPath
	CollectConfigFiles(paths []entities.ArtifactPath) []string
	CollectDatabaseFiles(paths []entities.ArtifactPath) []string
}

// ConfigScanner extends FieldSource with account-oriented scanning and
// redaction over structured configuration files.
type ConfigScanner interface {
	FieldSource
	DiscoverAccountFields(paths []string) []entities.IdentityRecord
	ExtractAccountData(path string) (entities.AccountFile, error)
	CleanAccountFile(path string, data entities.AccountFile, targetEmail string, removeAll bool) (bool, error)
}

// DatabaseInspector introspects embedded databases without mutating them.
type DatabaseInspector interface {
	Analyze(path string) (entities.DatabaseAnalysis, error)
	SearchKeyword(path, keyword string, tables []entities.TableInfo) ([]entities.RowMatch, error)
}

// DatabaseCleaner mutates one embedded database per the cleanup options.
type DatabaseCleaner interface {
	Clean(path string, analysis entities.DatabaseAnalysis, keyword string, opts entities.CleanupOptions) (entities.DatabaseCleanResult, error)
}

// WorkspaceManager discovers and cleans product workspaces.
type WorkspaceManager interface {
	DiscoverWorkspaces(productPaths []entities.ArtifactPath, configFiles []string) []entities.WorkspaceDescriptor
	Clean(ws entities.WorkspaceDescriptor, opts entities.CleanupOptions) (int, bool)
}

// EditorScanner detects the product inside host editor installations.
type EditorScanner interface {
	Scan(running []entities.ProcessInfo) entities.EditorScanResult
}

// ProcessManager lists and terminates host-editor processes carrying the
// product.
type ProcessManager interface {
	ListMatching() ([]entities.ProcessInfo, error)
	Terminate(targets []entities.ProcessInfo, force bool) entities.TerminationResult
}
